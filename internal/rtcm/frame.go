package rtcm

import (
	"errors"
	"fmt"
	"strings"
)

// Scale constants fixed by the protocol. Raw integer fields are kept as
// decoded; scaling always derives a separate physical value.
const (
	ZCountScale = 0.6 // seconds

	PRCSmallScale = 0.02  // metres
	PRCLargeScale = 0.32  // metres
	RRCSmallScale = 0.002 // metres/sec
	RRCLargeScale = 0.032 // metres/sec

	XYZScale = 0.01 // metres, ECEF reference position

	LatScale = 90.0 / 32767.0  // degrees
	LonScale = 180.0 / 32767.0 // degrees

	FreqScale  = 0.1   // kHz
	FreqOffset = 190.0 // kHz
)

// Header is the decoded two-word frame header.
type Header struct {
	StationID int // reference station ID
	MsgType   int
	Length    int // declared data words, excluding the header
	Sequence  int
	Health    int // station health
	ZCount    int // raw epoch count, 0.6 s units
}

// ZCountSeconds returns the header timestamp in seconds.
func (h Header) ZCountSeconds() float64 {
	return float64(h.ZCount) * ZCountScale
}

// Body is one decoded frame payload; the concrete type depends on the
// message type.
type Body interface {
	MessageType() int
}

// Frame is a fully decoded RTCM frame.
type Frame struct {
	Header Header
	Body   Body
}

// UnsupportedTypeError reports a message type this decoder has no body
// decoder for. The header remains available to the caller.
type UnsupportedTypeError struct {
	Type int
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("rtcm: unsupported message type %d", e.Type)
}

var (
	errShortFrame   = errors.New("rtcm: frame shorter than header")
	errBadPreamble  = errors.New("rtcm: header word has no preamble")
	errLengthAgree  = errors.New("rtcm: word count disagrees with declared frame length")
	errFrameTooLong = errors.New("rtcm: frame exceeds maximum word count")
)

// Correction is one satellite entry from a type 1 or type 9 message. PRC
// and RRC are the raw sign-extended wire integers; the scaled values come
// from the accessor methods.
type Correction struct {
	SatID int
	UDRE  int
	Scale bool // selects the large-range scale pair
	IOD   int
	PRC   int
	RRC   int
}

// PseudorangeCorrection returns the correction in metres.
func (c Correction) PseudorangeCorrection() float64 {
	if c.Scale {
		return float64(c.PRC) * PRCLargeScale
	}
	return float64(c.PRC) * PRCSmallScale
}

// RangeRateCorrection returns the range-rate correction in metres/sec.
func (c Correction) RangeRateCorrection() float64 {
	if c.Scale {
		return float64(c.RRC) * RRCLargeScale
	}
	return float64(c.RRC) * RRCSmallScale
}

// Corrections is the body of a type 1 (full set) or type 9 (partial set)
// differential correction message.
type Corrections struct {
	Type    int
	Entries []Correction
}

func (c *Corrections) MessageType() int { return c.Type }

// ReferencePosition is the body of a type 3 message: the station's ECEF
// position in raw centimetre units.
type ReferencePosition struct {
	X, Y, Z int32
}

func (*ReferencePosition) MessageType() int { return 3 }

// ECEF returns the station position in metres.
func (r *ReferencePosition) ECEF() (x, y, z float64) {
	return float64(r.X) * XYZScale, float64(r.Y) * XYZScale, float64(r.Z) * XYZScale
}

// BeaconStation is one entry of a type 7 radiobeacon almanac.
type BeaconStation struct {
	Lat       int // raw, LatScale degrees
	Lon       int // raw, LonScale degrees
	Range     int // km
	Frequency int // raw, FreqScale kHz above FreqOffset
	Health    int
	StationID int
	BitRate   int
}

// LatDegrees returns the beacon latitude in degrees.
func (b BeaconStation) LatDegrees() float64 { return float64(b.Lat) * LatScale }

// LonDegrees returns the beacon longitude in degrees.
func (b BeaconStation) LonDegrees() float64 { return float64(b.Lon) * LonScale }

// FrequencyKHz returns the broadcast frequency in kHz.
func (b BeaconStation) FrequencyKHz() float64 {
	return FreqOffset + float64(b.Frequency)*FreqScale
}

// Almanac is the body of a type 7 radiobeacon almanac message.
type Almanac struct {
	Stations []BeaconStation
}

func (*Almanac) MessageType() int { return 7 }

// Text is the body of a type 16 special message.
type Text struct {
	Message string
}

func (*Text) MessageType() int { return 16 }

// DecodeHeader decodes the two-word header without touching the body.
func DecodeHeader(words []uint32) (Header, error) {
	if len(words) < 2 {
		return Header{}, errShortFrame
	}
	w1, w2 := words[0], words[1]
	if w1>>22&0xFF != Preamble {
		return Header{}, errBadPreamble
	}
	return Header{
		MsgType:   int(w1 >> 16 & 0x3F),
		StationID: int(w1 >> 6 & 0x3FF),
		ZCount:    int(w2 >> 17 & 0x1FFF),
		Sequence:  int(w2 >> 14 & 0x7),
		Length:    int(w2 >> 9 & 0x1F),
		Health:    int(w2 >> 6 & 0x7),
	}, nil
}

// DecodeFrame decodes a synchronized frame buffer into a typed record.
// Dispatch is strictly on the header message type; a type without a body
// decoder returns an UnsupportedTypeError, never a guessed body.
func DecodeFrame(words []uint32) (*Frame, error) {
	hdr, err := DecodeHeader(words)
	if err != nil {
		return nil, err
	}
	if len(words) > WordsMax {
		return nil, errFrameTooLong
	}
	if len(words) != 2+hdr.Length {
		return nil, errLengthAgree
	}

	payload := packPayload(words[2:])

	var body Body
	switch hdr.MsgType {
	case 1, 9:
		body = decodeCorrections(hdr.MsgType, payload)
	case 3:
		body, err = decodeReferencePosition(payload)
	case 7:
		body = decodeAlmanac(payload)
	case 16:
		body = decodeText(payload)
	default:
		return nil, &UnsupportedTypeError{Type: hdr.MsgType}
	}
	if err != nil {
		return nil, err
	}
	return &Frame{Header: hdr, Body: body}, nil
}

// packPayload concatenates the 24 data bits of each word into a contiguous
// big-endian byte buffer so multi-word fields can be extracted in one read.
func packPayload(words []uint32) []byte {
	buf := make([]byte, 0, len(words)*3)
	for _, w := range words {
		data := w >> 6 & 0xFFFFFF
		buf = append(buf, byte(data>>16), byte(data>>8), byte(data))
	}
	return buf
}

// decodeCorrections unpacks 40-bit correction entries. Fields split across
// word boundaries (such as the 16-bit pseudorange correction of the third
// entry in each clump) are reassembled with sign extension before any
// scaling is applied.
func decodeCorrections(msgType int, payload []byte) *Corrections {
	c := &Corrections{Type: msgType}
	n := len(payload) * 8
	for i := 0; i+40 <= n; i += 40 {
		scale := getBitU(payload, i, 1)
		udre := getBitU(payload, i+1, 2)
		sat := getBitU(payload, i+3, 5)
		prc := getBits(payload, i+8, 16)
		rrc := getBits(payload, i+24, 8)
		iod := getBitU(payload, i+32, 8)

		if sat == 0 {
			sat = 32
		}
		// All-ones PRC or RRC flags a satellite problem; the entry
		// carries no usable correction.
		if prc == -32768 || rrc == -128 {
			continue
		}

		c.Entries = append(c.Entries, Correction{
			SatID: int(sat),
			UDRE:  int(udre),
			Scale: scale != 0,
			IOD:   int(iod),
			PRC:   int(prc),
			RRC:   int(rrc),
		})
	}
	return c
}

func decodeReferencePosition(payload []byte) (*ReferencePosition, error) {
	if len(payload)*8 < 96 {
		return nil, errors.New("rtcm: type 3 frame too short")
	}
	return &ReferencePosition{
		X: getBits(payload, 0, 32),
		Y: getBits(payload, 32, 32),
		Z: getBits(payload, 64, 32),
	}, nil
}

func decodeAlmanac(payload []byte) *Almanac {
	a := &Almanac{}
	n := len(payload) * 8
	for i := 0; i+72 <= n; i += 72 {
		a.Stations = append(a.Stations, BeaconStation{
			Lat:       int(getBits(payload, i, 16)),
			Lon:       int(getBits(payload, i+16, 16)),
			Range:     int(getBitU(payload, i+32, 10)),
			Frequency: int(getBitU(payload, i+42, 12)),
			Health:    int(getBitU(payload, i+54, 2)),
			StationID: int(getBitU(payload, i+56, 10)),
			BitRate:   int(getBitU(payload, i+66, 3)),
		})
	}
	return a
}

func decodeText(payload []byte) *Text {
	var sb strings.Builder
	for _, b := range payload {
		if b == 0 {
			break
		}
		if b >= 0x20 && b < 0x7F {
			sb.WriteByte(b)
		}
	}
	return &Text{Message: sb.String()}
}
