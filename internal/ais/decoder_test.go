package ais

import (
	"errors"
	"testing"
)

func TestDecodePositionReport(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":1,"device":"/dev/ttyUSB0","repeat":2,` +
		`"mmsi":366989394,"status":0,"turn":-127,"speed":101,"accuracy":true,` +
		`"lon":-93184450,"lat":30129320,"course":2169,"heading":5,"second":59,` +
		`"maneuver":0,"raim":false,"radio":2281}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if m.Type != 1 {
		t.Errorf("Type = %d, want 1", m.Type)
	}
	if m.MMSI != 366989394 {
		t.Errorf("MMSI = %d, want 366989394", m.MMSI)
	}
	if m.Repeat != 2 {
		t.Errorf("Repeat = %d, want 2", m.Repeat)
	}
	if m.Device != "/dev/ttyUSB0" {
		t.Errorf("Device = %q, want /dev/ttyUSB0", m.Device)
	}
	p := m.Position
	if p == nil {
		t.Fatal("Position payload not populated")
	}
	if p.Turn != -127 {
		t.Errorf("Turn = %d, want -127", p.Turn)
	}
	if p.Speed != 101 {
		t.Errorf("Speed = %d, want 101", p.Speed)
	}
	if !p.Accuracy {
		t.Error("Accuracy = false, want true")
	}
	if p.Lon != -93184450 {
		t.Errorf("Lon = %d, want -93184450", p.Lon)
	}
	if p.Course != 2169 {
		t.Errorf("Course = %d, want 2169", p.Course)
	}
}

func TestDecodeSharedHandlerTypes(t *testing.T) {
	// Types 2 and 3 ride the same schema as type 1.
	for _, typ := range []int{2, 3} {
		raw := []byte(`{"class":"AIS","type":` + string(rune('0'+typ)) +
			`,"device":"x","repeat":0,"mmsi":123456789,"speed":55}`)
		var d Decoder
		m, err := d.Decode(raw, nil)
		if err != nil {
			t.Fatalf("type %d: %v", typ, err)
		}
		if m.Type != typ {
			t.Errorf("Type = %d, want %d", m.Type, typ)
		}
		if m.Position == nil || m.Position.Speed != 55 {
			t.Errorf("type %d: position payload missing or wrong", typ)
		}
	}
}

func TestDecodeBaseStationTimestamp(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":4,"device":"aisfeed","repeat":0,` +
		`"mmsi":3669987,"timestamp":"2012-03-28T12:34:56Z","accuracy":true,` +
		`"lon":-76350986,"lat":42849100,"epfd":7,"raim":false,"radio":67039}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b := m.BaseStation
	if b == nil {
		t.Fatal("BaseStation payload not populated")
	}
	if b.Year != 2012 || b.Month != 3 || b.Day != 28 {
		t.Errorf("date = %d-%d-%d, want 2012-3-28", b.Year, b.Month, b.Day)
	}
	if b.Hour != 12 || b.Minute != 34 || b.Second != 56 {
		t.Errorf("time = %d:%d:%d, want 12:34:56", b.Hour, b.Minute, b.Second)
	}
}

func TestDecodeBaseStationBadTimestamp(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":4,"device":"aisfeed","repeat":0,` +
		`"mmsi":3669987,"timestamp":"not-a-date","lon":1,"lat":2}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("a failed timestamp scan must not fail the decode: %v", err)
	}
	b := m.BaseStation
	if b.Year != YearNotAvailable || b.Month != MonthNotAvailable ||
		b.Day != DayNotAvailable || b.Hour != HourNotAvailable ||
		b.Minute != MinuteNotAvailable || b.Second != SecondNotAvailable {
		t.Errorf("expected all NotAvailable sentinels, got %+v", b)
	}
	// The structural part still decoded.
	if b.Lon != 1 || b.Lat != 2 {
		t.Errorf("lon/lat = %d/%d, want 1/2", b.Lon, b.Lat)
	}
}

func TestDecodeType11SharesTimestampHandling(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":11,"device":"d","repeat":0,` +
		`"mmsi":100,"timestamp":"1999-12-31T23:59:58Z"}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.BaseStation == nil || m.BaseStation.Year != 1999 || m.BaseStation.Second != 58 {
		t.Errorf("type 11 timestamp not parsed: %+v", m.BaseStation)
	}
}

func TestDecodeStaticVoyageETA(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":5,"device":"aisfeed","repeat":0,` +
		`"mmsi":351759000,"imo":9134270,"ais_version":0,"callsign":"3FOF8",` +
		`"shipname":"EVER DIADEM","shiptype":70,"to_bow":225,"to_stern":70,` +
		`"to_port":1,"to_starboard":31,"epfd":1,"eta":"02-28T06:00Z",` +
		`"draught":122,"destination":"NEW YORK","dte":0}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	v := m.StaticVoyage
	if v == nil {
		t.Fatal("StaticVoyage payload not populated")
	}
	if v.Month != 2 || v.Day != 28 || v.Hour != 6 || v.Minute != 0 {
		t.Errorf("ETA = %d-%dT%d:%d, want 2-28T6:0", v.Month, v.Day, v.Hour, v.Minute)
	}
	if v.Shipname != "EVER DIADEM" {
		t.Errorf("Shipname = %q", v.Shipname)
	}
	if v.Destination != "NEW YORK" {
		t.Errorf("Destination = %q", v.Destination)
	}
	if v.Draught != 122 {
		t.Errorf("Draught = %d, want 122", v.Draught)
	}
}

func TestDecodeDevicePathTruncation(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":10,"device":"/dev/ttyUSB0",` +
		`"repeat":0,"mmsi":55,"dest_mmsi":366972000}`)

	pathBuf := make([]byte, 8)
	var d Decoder
	m, err := d.Decode(raw, pathBuf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Device != "/dev/tty" {
		t.Errorf("Device = %q, want truncated %q", m.Device, "/dev/tty")
	}
	if m.UTCInquiry == nil || m.UTCInquiry.DestMMSI != 366972000 {
		t.Errorf("UTCInquiry payload missing or wrong: %+v", m.UTCInquiry)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":23,"device":"d","repeat":0,"mmsi":1}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if m != nil {
		t.Errorf("expected no record for unknown type, got %+v", m)
	}
	var ute *UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
	if ute.Type != 23 {
		t.Errorf("UnknownTypeError.Type = %d, want 23", ute.Type)
	}
}

func TestDecodeMalformedJSON(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":1,`)

	var d Decoder
	_, err := d.Decode(raw, nil)
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	// Syntax failures stay distinct from unknown-class failures.
	var ute *UnknownTypeError
	if errors.As(err, &ute) {
		t.Error("syntax error must not double as an unknown-type error")
	}
}

func TestDecodeWrongClassMarker(t *testing.T) {
	raw := []byte(`{"class":"TPV","type":1,"device":"d","repeat":0,"mmsi":1}`)

	var d Decoder
	_, err := d.Decode(raw, nil)
	if !errors.Is(err, ErrClassMarker) {
		t.Fatalf("expected ErrClassMarker, got %v", err)
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	raw := []byte(`{"class":"AIS","type":14,"device":"d","repeat":0,"mmsi":1,` +
		`"text":"SAY AGAIN","somefuturefield":42}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("unknown fields must be ignored: %v", err)
	}
	if m.SafetyBcast == nil || m.SafetyBcast.Text != "SAY AGAIN" {
		t.Errorf("SafetyBcast = %+v", m.SafetyBcast)
	}
}

func TestDecodeOpaqueBinaryPayload(t *testing.T) {
	// Types 6, 8 and 17 carry their application payload through untouched.
	raw := []byte(`{"class":"AIS","type":8,"device":"d","repeat":0,"mmsi":1,` +
		`"dac":1,"fid":11,"data":"3130303030"}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Broadcast == nil || m.Broadcast.Data != "3130303030" {
		t.Errorf("Broadcast = %+v", m.Broadcast)
	}
	if m.Broadcast.DAC != 1 || m.Broadcast.FID != 11 {
		t.Errorf("DAC/FID = %d/%d, want 1/11", m.Broadcast.DAC, m.Broadcast.FID)
	}
}

func TestScanTypeHintTolerance(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"class":"AIS","type":18,"mmsi":1}`, 18},
		{`{"class":"AIS", "type" : 5 ,"mmsi":1}`, 5},
		{`{"type":
			21}`, 21},
		{`{"class":"AIS"}`, -1},
	}
	for _, c := range cases {
		if got := scanType([]byte(c.raw)); got != c.want {
			t.Errorf("scanType(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestDecodeFieldOrderIndependent(t *testing.T) {
	// The pre-scan is only a routing hint; a reordered object must still
	// decode through the authoritative parsed type.
	raw := []byte(`{"mmsi":777,"repeat":1,"class":"AIS","speed":12,"type":18}`)

	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Type != 18 || m.ClassBPosition == nil || m.ClassBPosition.Speed != 12 {
		t.Errorf("reordered object decoded wrong: %+v", m)
	}
}
