package ais

import (
	"reflect"
	"testing"
)

func TestSupportedTypesClosedSet(t *testing.T) {
	want := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 24}
	if got := SupportedTypes(); !reflect.DeepEqual(got, want) {
		t.Errorf("SupportedTypes() = %v, want %v", got, want)
	}
	if Supported(23) {
		t.Error("type 23 must not be supported")
	}
	if Supported(0) || Supported(25) {
		t.Error("types outside the closed set must not be supported")
	}
}

func TestSharedHandlers(t *testing.T) {
	if schemas[1] != schemas[2] || schemas[2] != schemas[3] {
		t.Error("types 1, 2, 3 must share one schema")
	}
	if schemas[4] != schemas[11] {
		t.Error("types 4 and 11 must share one schema")
	}
	if schemas[7] != schemas[13] {
		t.Error("types 7 and 13 must share one schema")
	}
}

func TestType17HasItsOwnHandler(t *testing.T) {
	// A duplicate dispatch entry once let type 18 shadow the GNSS
	// broadcast handler; the two must stay distinct.
	if schemas[17] == schemas[18] {
		t.Error("types 17 and 18 must not share a schema")
	}
	raw := []byte(`{"class":"AIS","type":17,"device":"d","repeat":0,"mmsi":2,` +
		`"lon":1747,"lat":33529,"data":"7c0556c07031febbf52924fe"}`)
	var d Decoder
	m, err := d.Decode(raw, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.GNSSBroadcast == nil {
		t.Fatal("type 17 must decode through the GNSS broadcast schema")
	}
	if m.ClassBPosition != nil {
		t.Error("type 17 must not populate the type 18 payload")
	}
	if m.GNSSBroadcast.Data != "7c0556c07031febbf52924fe" {
		t.Errorf("Data = %q", m.GNSSBroadcast.Data)
	}
}

func TestDuplicateDiscriminantRejected(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate discriminant must panic")
		}
	}()
	reg := make(map[int]*Schema)
	addSchema(reg, &Schema{decode: decodeClassBPosition}, 18)
	addSchema(reg, &Schema{decode: decodeGNSSBroadcast}, 18)
}

func TestOpaquePayloadFlags(t *testing.T) {
	for _, typ := range SupportedTypes() {
		want := typ == 6 || typ == 8 || typ == 17
		if got := schemas[typ].opaque; got != want {
			t.Errorf("type %d opaque = %v, want %v", typ, got, want)
		}
	}
}
