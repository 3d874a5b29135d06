package ais

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrClassMarker is returned when the mandatory class field is missing or
// not the literal "AIS".
var ErrClassMarker = errors.New(`ais: class is not "AIS"`)

// SyntaxError wraps a JSON parse failure from the structural parser. It is
// kept distinct from UnknownTypeError so callers can tell input corruption
// apart from a protocol-version mismatch.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "ais: malformed JSON: " + e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// UnknownTypeError reports a type discriminant outside the closed supported
// set.
type UnknownTypeError struct {
	Type int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("ais: unrecognized message type %d", e.Type)
}

// header is the mandatory block common to every schema.
type header struct {
	Class  string `json:"class"`
	Type   int    `json:"type"`
	Device string `json:"device"`
	Repeat int    `json:"repeat"`
	MMSI   uint32 `json:"mmsi"`
}

// Decoder decodes AIS JSON objects. It holds no state across calls, so one
// Decoder may be shared by concurrent callers as long as each call uses its
// own path buffer.
type Decoder struct{}

// Decode decodes one JSON object into a freshly allocated Message.
//
// The device path is copied into pathBuf, truncated to its capacity; a nil
// pathBuf leaves the path unbounded. Unknown JSON fields are ignored. On
// error the returned message is nil.
func (d *Decoder) Decode(raw []byte, pathBuf []byte) (*Message, error) {
	// Cheap routing hint only; the parsed header below is authoritative.
	hint := scanType(raw)
	sch, ok := schemas[hint]

	var hdr header
	if err := json.Unmarshal(raw, &hdr); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	if hdr.Class != "AIS" {
		return nil, ErrClassMarker
	}
	if hdr.Type != hint {
		sch, ok = schemas[hdr.Type]
	}
	if !ok {
		return nil, &UnknownTypeError{Type: hdr.Type}
	}

	m := &Message{
		Type:   hdr.Type,
		Repeat: hdr.Repeat,
		MMSI:   hdr.MMSI,
		Device: boundedCopy(pathBuf, hdr.Device),
	}
	if err := sch.decode(raw, m); err != nil {
		return nil, err
	}
	if sch.post != nil {
		sch.post(m)
	}
	return m, nil
}

// scanType linearly scans the raw text for the first "type" key and returns
// its integer value, or -1. Whitespace and field order do not matter, but
// the result is only a dispatch hint; a false positive (say, a "type"
// nested in a string) is corrected against the structured parse.
func scanType(raw []byte) int {
	const key = `"type"`
	for i := 0; i+len(key) < len(raw); i++ {
		if raw[i] != '"' || string(raw[i:i+len(key)]) != key {
			continue
		}
		j := i + len(key)
		for j < len(raw) && (raw[j] == ' ' || raw[j] == '\t' || raw[j] == '\n' || raw[j] == '\r') {
			j++
		}
		if j >= len(raw) || raw[j] != ':' {
			continue
		}
		j++
		for j < len(raw) && (raw[j] == ' ' || raw[j] == '\t' || raw[j] == '\n' || raw[j] == '\r') {
			j++
		}
		n := -1
		for j < len(raw) && raw[j] >= '0' && raw[j] <= '9' {
			if n < 0 {
				n = 0
			}
			n = n*10 + int(raw[j]-'0')
			j++
		}
		if n >= 0 {
			return n
		}
	}
	return -1
}

// boundedCopy copies s into buf, truncating at capacity, and returns the
// copied text. A nil buf imposes no bound.
func boundedCopy(buf []byte, s string) string {
	if buf == nil {
		return s
	}
	n := copy(buf, s)
	return string(buf[:n])
}

func structural(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &SyntaxError{Err: err}
	}
	return nil
}

func decodePosition(raw []byte, m *Message) error {
	var p Position
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.Position = &p
	return nil
}

func decodeBaseStation(raw []byte, m *Message) error {
	var p BaseStation
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.BaseStation = &p
	return nil
}

func decodeStaticVoyage(raw []byte, m *Message) error {
	var p StaticVoyage
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.StaticVoyage = &p
	return nil
}

func decodeAddressedBinary(raw []byte, m *Message) error {
	var p AddressedBinary
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.Addressed = &p
	return nil
}

func decodeAcknowledge(raw []byte, m *Message) error {
	var p Acknowledge
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.Ack = &p
	return nil
}

func decodeBroadcastBinary(raw []byte, m *Message) error {
	var p BroadcastBinary
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.Broadcast = &p
	return nil
}

func decodeSARAircraft(raw []byte, m *Message) error {
	var p SARAircraft
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.SARAircraft = &p
	return nil
}

func decodeUTCInquiry(raw []byte, m *Message) error {
	var p UTCInquiry
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.UTCInquiry = &p
	return nil
}

func decodeSafetyAddressed(raw []byte, m *Message) error {
	var p SafetyAddressed
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.SafetyAddr = &p
	return nil
}

func decodeSafetyBroadcast(raw []byte, m *Message) error {
	var p SafetyBroadcast
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.SafetyBcast = &p
	return nil
}

func decodeInterrogation(raw []byte, m *Message) error {
	var p Interrogation
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.Interrogation = &p
	return nil
}

func decodeAssignment(raw []byte, m *Message) error {
	var p Assignment
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.Assignment = &p
	return nil
}

func decodeGNSSBroadcast(raw []byte, m *Message) error {
	var p GNSSBroadcast
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.GNSSBroadcast = &p
	return nil
}

func decodeClassBPosition(raw []byte, m *Message) error {
	var p ClassBPosition
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.ClassBPosition = &p
	return nil
}

func decodeClassBExtended(raw []byte, m *Message) error {
	var p ClassBExtended
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.ClassBExtended = &p
	return nil
}

func decodeLinkManagement(raw []byte, m *Message) error {
	var p LinkManagement
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.LinkManagement = &p
	return nil
}

func decodeAidToNavigation(raw []byte, m *Message) error {
	var p AidToNavigation
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.AidToNav = &p
	return nil
}

func decodeChannelMgmt(raw []byte, m *Message) error {
	var p ChannelMgmt
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.ChannelMgmt = &p
	return nil
}

func decodeStaticData(raw []byte, m *Message) error {
	var p StaticData
	if err := structural(raw, &p); err != nil {
		return err
	}
	m.StaticData = &p
	return nil
}

// postTimestamp resolves the composite UTC timestamp of types 4 and 11.
// The numeric components start at their NotAvailable sentinels and only
// fields matched by one strict scan of "YYYY-MM-DDThh:mm:ssZ" are set; a
// non-matching string leaves the sentinels in place and is not an error,
// since the structural decode already succeeded.
func postTimestamp(m *Message) {
	b := m.BaseStation
	b.Year = YearNotAvailable
	b.Month = MonthNotAvailable
	b.Day = DayNotAvailable
	b.Hour = HourNotAvailable
	b.Minute = MinuteNotAvailable
	b.Second = SecondNotAvailable

	var year, month, day, hour, minute, second int
	n, _ := fmt.Sscanf(b.Timestamp, "%4d-%2d-%2dT%2d:%2d:%2dZ",
		&year, &month, &day, &hour, &minute, &second)
	if n >= 1 {
		b.Year = year
	}
	if n >= 2 {
		b.Month = month
	}
	if n >= 3 {
		b.Day = day
	}
	if n >= 4 {
		b.Hour = hour
	}
	if n >= 5 {
		b.Minute = minute
	}
	if n >= 6 {
		b.Second = second
	}
}

// postETA resolves the composite ETA string of type 5, format "MM-DDThh:mmZ".
func postETA(m *Message) {
	v := m.StaticVoyage
	v.Month = MonthNotAvailable
	v.Day = DayNotAvailable
	v.Hour = HourNotAvailable
	v.Minute = MinuteNotAvailable

	var month, day, hour, minute int
	n, _ := fmt.Sscanf(v.ETA, "%2d-%2dT%2d:%2dZ", &month, &day, &hour, &minute)
	if n >= 1 {
		v.Month = month
	}
	if n >= 2 {
		v.Day = day
	}
	if n >= 3 {
		v.Hour = hour
	}
	if n >= 4 {
		v.Minute = minute
	}
}
