// aisdecode reads newline-delimited AIS JSON messages from a file or
// stdin, decodes each one, and writes the decoded records back out as
// JSON. Useful for spot-checking captures and driving the decoder from
// shell pipelines.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"gnssd/internal/ais"
)

func main() {
	input := flag.String("input", "-", "Input file of newline-delimited AIS JSON (- for stdin)")
	output := flag.String("output", "-", "Output file (- for stdout)")
	pretty := flag.Bool("pretty", false, "Indent output JSON")
	keepRaw := flag.Bool("raw", false, "Echo undecodable lines to stderr")
	stats := flag.Bool("stats", false, "Print per-type counts to stderr on exit")
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

	out := os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create output: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	var (
		decoder     ais.Decoder
		counts      = make(map[int]int)
		decoded     int
		unknown     int
		malformed   int
		wrongStream int
	)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		m, err := decoder.Decode(line, nil)
		if err != nil {
			switch {
			case errors.Is(err, ais.ErrClassMarker):
				wrongStream++
			case errors.As(err, new(*ais.UnknownTypeError)):
				unknown++
			default:
				malformed++
			}
			if *keepRaw {
				fmt.Fprintf(os.Stderr, "%v: %s\n", err, line)
			}
			continue
		}
		decoded++
		counts[m.Type]++
		if err := enc.Encode(m); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	if *stats {
		fmt.Fprintf(os.Stderr, "decoded=%d unknown_type=%d malformed=%d wrong_stream=%d\n",
			decoded, unknown, malformed, wrongStream)
		for _, t := range ais.SupportedTypes() {
			if counts[t] > 0 {
				fmt.Fprintf(os.Stderr, "  type %2d: %d\n", t, counts[t])
			}
		}
	}
}
