// rtcmdump reads a big-endian stream of 30-bit RTCM-104 words from a file
// or stdin, runs the synchronizer over it, and prints every decoded frame
// in a human-readable form.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gnssd/internal/ingest"
	"gnssd/internal/rtcm"
)

func main() {
	input := flag.String("input", "-", "Input word stream (- for stdin)")
	showSkipped := flag.Bool("skipped", false, "Report frames with unsupported message types")
	flag.Parse()

	in := os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	var frames, skipped int
	sync := rtcm.NewSync()
	err := ingest.ReadWords(in, func(w uint32) {
		if sync.Feed(w) != rtcm.FrameReady {
			return
		}
		frame, err := rtcm.DecodeFrame(sync.Frame())
		if err != nil {
			var unsup *rtcm.UnsupportedTypeError
			if errors.As(err, &unsup) {
				skipped++
				if *showSkipped {
					fmt.Fprintf(os.Stderr, "skipped: %v\n", err)
				}
				return
			}
			fmt.Fprintf(os.Stderr, "decode: %v\n", err)
			return
		}
		frames++
		printFrame(frame)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "frames=%d skipped=%d\n", frames, skipped)
}

func printFrame(f *rtcm.Frame) {
	fmt.Printf("type %d station %d z-count %.1fs seq %d health %d\n",
		f.Header.MsgType, f.Header.StationID, f.Header.ZCountSeconds(),
		f.Header.Sequence, f.Header.Health)

	switch b := f.Body.(type) {
	case *rtcm.Corrections:
		for _, c := range b.Entries {
			fmt.Printf("  sat %2d udre %d iod %3d prc %+9.2fm rrc %+7.3fm/s\n",
				c.SatID, c.UDRE, c.IOD,
				c.PseudorangeCorrection(), c.RangeRateCorrection())
		}
	case *rtcm.ReferencePosition:
		x, y, z := b.ECEF()
		fmt.Printf("  ecef x %.2fm y %.2fm z %.2fm\n", x, y, z)
	case *rtcm.Almanac:
		for _, s := range b.Stations {
			fmt.Printf("  beacon lat %+8.4f lon %+9.4f freq %.1fkHz range %dkm station %d health %d\n",
				s.LatDegrees(), s.LonDegrees(), s.FrequencyKHz(),
				s.Range, s.StationID, s.Health)
		}
	case *rtcm.Text:
		fmt.Printf("  %q\n", b.Message)
	}
}
