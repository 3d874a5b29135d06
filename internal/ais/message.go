// Package ais decodes AIS JSON sentences into typed records.
//
// The wire format is one JSON object per message, carrying a common header
// (class/type/device/repeat/mmsi) plus per-type fields. Field names are part
// of the compatibility surface with existing AIS feed producers and are
// reproduced verbatim in the struct tags.
package ais

// "Not available" sentinel values for date/time components that may be
// absent from an embedded timestamp or ETA string.
const (
	YearNotAvailable   = 0
	MonthNotAvailable  = 0
	DayNotAvailable    = 0
	HourNotAvailable   = 24
	MinuteNotAvailable = 60
	SecondNotAvailable = 60
)

// Message is one decoded AIS message. Type selects which of the payload
// pointers is populated; exactly one is non-nil after a successful decode.
type Message struct {
	Type   int    `json:"type"`
	Repeat int    `json:"repeat"`
	MMSI   uint32 `json:"mmsi"`
	Device string `json:"device,omitempty"`

	Position       *Position        `json:"position,omitempty"`         // types 1-3
	BaseStation    *BaseStation     `json:"base_station,omitempty"`     // types 4, 11
	StaticVoyage   *StaticVoyage    `json:"static_voyage,omitempty"`    // type 5
	Addressed      *AddressedBinary `json:"addressed_binary,omitempty"` // type 6
	Ack            *Acknowledge     `json:"acknowledge,omitempty"`      // types 7, 13
	Broadcast      *BroadcastBinary `json:"broadcast_binary,omitempty"` // type 8
	SARAircraft    *SARAircraft     `json:"sar_aircraft,omitempty"`     // type 9
	UTCInquiry     *UTCInquiry      `json:"utc_inquiry,omitempty"`      // type 10
	SafetyAddr     *SafetyAddressed `json:"safety_addressed,omitempty"` // type 12
	SafetyBcast    *SafetyBroadcast `json:"safety_broadcast,omitempty"` // type 14
	Interrogation  *Interrogation   `json:"interrogation,omitempty"`    // type 15
	Assignment     *Assignment      `json:"assignment,omitempty"`       // type 16
	GNSSBroadcast  *GNSSBroadcast   `json:"gnss_broadcast,omitempty"`   // type 17
	ClassBPosition *ClassBPosition  `json:"class_b_position,omitempty"` // type 18
	ClassBExtended *ClassBExtended  `json:"class_b_extended,omitempty"` // type 19
	LinkManagement *LinkManagement  `json:"link_management,omitempty"`  // type 20
	AidToNav       *AidToNavigation `json:"aid_to_nav,omitempty"`       // type 21
	ChannelMgmt    *ChannelMgmt     `json:"channel_mgmt,omitempty"`     // type 22
	StaticData     *StaticData      `json:"static_data,omitempty"`      // type 24
}

// Position is the common navigation block shared by types 1, 2 and 3.
type Position struct {
	Status   int  `json:"status"`
	Turn     int  `json:"turn"`
	Speed    int  `json:"speed"`
	Accuracy bool `json:"accuracy"`
	Lon      int  `json:"lon"`
	Lat      int  `json:"lat"`
	Course   int  `json:"course"`
	Heading  int  `json:"heading"`
	Second   int  `json:"second"`
	Maneuver int  `json:"maneuver"`
	RAIM     bool `json:"raim"`
	Radio    int  `json:"radio"`
}

// BaseStation is the type 4 (and type 11 UTC response) report. The wire
// carries the station time as one composite timestamp string; the split
// components are filled by a secondary parse and hold the NotAvailable
// sentinels when that parse does not match.
type BaseStation struct {
	Timestamp string `json:"timestamp"`
	Accuracy  bool   `json:"accuracy"`
	Lon       int    `json:"lon"`
	Lat       int    `json:"lat"`
	EPFD      int    `json:"epfd"`
	RAIM      bool   `json:"raim"`
	Radio     int    `json:"radio"`

	Year   int `json:"-"`
	Month  int `json:"-"`
	Day    int `json:"-"`
	Hour   int `json:"-"`
	Minute int `json:"-"`
	Second int `json:"-"`
}

// StaticVoyage is the type 5 static and voyage data report. ETA components
// are filled from the composite eta string the same way as BaseStation.
type StaticVoyage struct {
	IMO         int    `json:"imo"`
	AISVersion  int    `json:"ais_version"`
	Callsign    string `json:"callsign"`
	Shipname    string `json:"shipname"`
	Shiptype    int    `json:"shiptype"`
	ToBow       int    `json:"to_bow"`
	ToStern     int    `json:"to_stern"`
	ToPort      int    `json:"to_port"`
	ToStarboard int    `json:"to_starboard"`
	EPFD        int    `json:"epfd"`
	ETA         string `json:"eta"`
	Draught     int    `json:"draught"`
	Destination string `json:"destination"`
	DTE         int    `json:"dte"`

	Month  int `json:"-"`
	Day    int `json:"-"`
	Hour   int `json:"-"`
	Minute int `json:"-"`
}

// AddressedBinary is the type 6 addressed binary message. Data is the
// armored application payload, carried through uninterpreted; sub-decoding
// by DAC/FID is deferred.
type AddressedBinary struct {
	SeqNo      int    `json:"seqno"`
	DestMMSI   uint32 `json:"dest_mmsi"`
	Retransmit bool   `json:"retransmit"`
	DAC        int    `json:"dac"`
	FID        int    `json:"fid"`
	Data       string `json:"data"`
}

// Acknowledge covers types 7 (binary ack) and 13 (safety ack). Unused
// slots are zero.
type Acknowledge struct {
	MMSI1 uint32 `json:"mmsi1"`
	MMSI2 uint32 `json:"mmsi2"`
	MMSI3 uint32 `json:"mmsi3"`
	MMSI4 uint32 `json:"mmsi4"`
}

// BroadcastBinary is the type 8 broadcast binary message; Data is opaque,
// as for type 6.
type BroadcastBinary struct {
	DAC  int    `json:"dac"`
	FID  int    `json:"fid"`
	Data string `json:"data"`
}

// SARAircraft is the type 9 search-and-rescue aircraft position report.
type SARAircraft struct {
	Alt      int  `json:"alt"`
	Speed    int  `json:"speed"`
	Accuracy bool `json:"accuracy"`
	Lon      int  `json:"lon"`
	Lat      int  `json:"lat"`
	Course   int  `json:"course"`
	Second   int  `json:"second"`
	Regional int  `json:"regional"`
	DTE      int  `json:"dte"`
	RAIM     bool `json:"raim"`
	Radio    int  `json:"radio"`
}

// UTCInquiry is the type 10 UTC/date inquiry.
type UTCInquiry struct {
	DestMMSI uint32 `json:"dest_mmsi"`
}

// SafetyAddressed is the type 12 addressed safety-related message.
type SafetyAddressed struct {
	SeqNo      int    `json:"seqno"`
	DestMMSI   uint32 `json:"dest_mmsi"`
	Retransmit bool   `json:"retransmit"`
	Text       string `json:"text"`
}

// SafetyBroadcast is the type 14 safety-related broadcast.
type SafetyBroadcast struct {
	Text string `json:"text"`
}

// Interrogation is the type 15 interrogation.
type Interrogation struct {
	MMSI1    uint32 `json:"mmsi1"`
	Type1_1  int    `json:"type1_1"`
	Offset11 int    `json:"offset1_1"`
	Type1_2  int    `json:"type1_2"`
	Offset12 int    `json:"offset1_2"`
	MMSI2    uint32 `json:"mmsi2"`
	Type2_1  int    `json:"type2_1"`
	Offset21 int    `json:"offset2_1"`
}

// Assignment is the type 16 assignment mode command.
type Assignment struct {
	MMSI1      uint32 `json:"mmsi1"`
	Offset1    int    `json:"offset1"`
	Increment1 int    `json:"increment1"`
	MMSI2      uint32 `json:"mmsi2"`
	Offset2    int    `json:"offset2"`
	Increment2 int    `json:"increment2"`
}

// GNSSBroadcast is the type 17 GNSS differential correction broadcast.
// Data holds the embedded RTCM payload uninterpreted; sub-decoding is
// deferred.
type GNSSBroadcast struct {
	Lon  int    `json:"lon"`
	Lat  int    `json:"lat"`
	Data string `json:"data"`
}

// ClassBPosition is the type 18 standard class B position report.
type ClassBPosition struct {
	Reserved int  `json:"reserved"`
	Speed    int  `json:"speed"`
	Accuracy bool `json:"accuracy"`
	Lon      int  `json:"lon"`
	Lat      int  `json:"lat"`
	Course   int  `json:"course"`
	Heading  int  `json:"heading"`
	Second   int  `json:"second"`
	Regional int  `json:"regional"`
	CS       bool `json:"cs"`
	Display  bool `json:"display"`
	DSC      bool `json:"dsc"`
	Band     bool `json:"band"`
	Msg22    bool `json:"msg22"`
	RAIM     bool `json:"raim"`
	Radio    int  `json:"radio"`
}

// ClassBExtended is the type 19 extended class B position report.
type ClassBExtended struct {
	Reserved    int    `json:"reserved"`
	Speed       int    `json:"speed"`
	Accuracy    bool   `json:"accuracy"`
	Lon         int    `json:"lon"`
	Lat         int    `json:"lat"`
	Course      int    `json:"course"`
	Heading     int    `json:"heading"`
	Second      int    `json:"second"`
	Regional    int    `json:"regional"`
	Shipname    string `json:"shipname"`
	Shiptype    int    `json:"shiptype"`
	ToBow       int    `json:"to_bow"`
	ToStern     int    `json:"to_stern"`
	ToPort      int    `json:"to_port"`
	ToStarboard int    `json:"to_starboard"`
	EPFD        int    `json:"epfd"`
	RAIM        bool   `json:"raim"`
	DTE         int    `json:"dte"`
	Assigned    bool   `json:"assigned"`
}

// LinkManagement is the type 20 data link management message.
type LinkManagement struct {
	Offset1    int `json:"offset1"`
	Number1    int `json:"number1"`
	Timeout1   int `json:"timeout1"`
	Increment1 int `json:"increment1"`
	Offset2    int `json:"offset2"`
	Number2    int `json:"number2"`
	Timeout2   int `json:"timeout2"`
	Increment2 int `json:"increment2"`
	Offset3    int `json:"offset3"`
	Number3    int `json:"number3"`
	Timeout3   int `json:"timeout3"`
	Increment3 int `json:"increment3"`
	Offset4    int `json:"offset4"`
	Number4    int `json:"number4"`
	Timeout4   int `json:"timeout4"`
	Increment4 int `json:"increment4"`
}

// AidToNavigation is the type 21 aid-to-navigation report.
type AidToNavigation struct {
	AidType     int    `json:"aid_type"`
	Name        string `json:"name"`
	Accuracy    bool   `json:"accuracy"`
	Lon         int    `json:"lon"`
	Lat         int    `json:"lat"`
	ToBow       int    `json:"to_bow"`
	ToStern     int    `json:"to_stern"`
	ToPort      int    `json:"to_port"`
	ToStarboard int    `json:"to_starboard"`
	EPFD        int    `json:"epfd"`
	Second      int    `json:"second"`
	Regional    int    `json:"regional"`
	OffPosition bool   `json:"off_position"`
	RAIM        bool   `json:"raim"`
	VirtualAid  bool   `json:"virtual_aid"`
}

// ChannelMgmt is the type 22 channel management message.
type ChannelMgmt struct {
	ChannelA  int    `json:"channel_a"`
	ChannelB  int    `json:"channel_b"`
	TxRx      int    `json:"txrx"`
	Power     bool   `json:"power"`
	NELon     int    `json:"ne_lon"`
	NELat     int    `json:"ne_lat"`
	SWLon     int    `json:"sw_lon"`
	SWLat     int    `json:"sw_lat"`
	Dest1     uint32 `json:"dest1"`
	Dest2     uint32 `json:"dest2"`
	Addressed bool   `json:"addressed"`
	BandA     bool   `json:"band_a"`
	BandB     bool   `json:"band_b"`
	Zonesize  int    `json:"zonesize"`
}

// StaticData is the type 24 static data report (parts A and B flattened).
type StaticData struct {
	PartNo         int    `json:"partno"`
	Shipname       string `json:"shipname"`
	Shiptype       int    `json:"shiptype"`
	VendorID       string `json:"vendorid"`
	Callsign       string `json:"callsign"`
	MothershipMMSI uint32 `json:"mothership_mmsi"`
	ToBow          int    `json:"to_bow"`
	ToStern        int    `json:"to_stern"`
	ToPort         int    `json:"to_port"`
	ToStarboard    int    `json:"to_starboard"`
}
