// Package pgn holds the byte layouts of the NMEA2000 and J1939 parameter
// groups the simulator transmits, and encodes/decodes physical values
// against them.
//
// Each layout is a fixed positional contract: fields are packed
// little-endian in declaration order and the remainder of the payload is
// filled with the layout's padding byte.
package pgn

import "sort"

const (
	PositionRapidUpdate    uint32 = 129025
	COGSOGRapidUpdate      uint32 = 129026
	GNSSPositionData       uint32 = 129029
	EngineHoursRevolutions uint32 = 0xFEE5 // 65253
	DashDisplay            uint32 = 0xFEFC // 65276
	EngineTemperature1     uint32 = 0xFEEE // 65262
)

const (
	// J1939 "not available"
	PadNotAvailable byte = 0xFF
	PadZero         byte = 0x00
)

const (
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldCOG         = "cog"
	FieldSOG         = "sog"
	FieldAltitude    = "altitude"
	FieldHDOP        = "hdop"
	FieldVDOP        = "vdop"
	FieldEngineHours = "engine_hours"
	FieldFuelLevel   = "fuel_level"
	FieldCoolantTemp = "coolant_temp"
)

// Field describes one scaled integer inside a payload. The encoded value is
// (physical - Offset) / Resolution truncated toward zero and masked to
// Width bytes. When Scale is set it equals 1/Resolution and the value is
// multiplied by it instead of divided.
type Field struct {
	Name       string  `json:"name"`
	Width      int     `json:"width"`
	Signed     bool    `json:"signed"`
	Resolution float64 `json:"resolution"`
	Scale      float64 `json:"scale,omitempty"`
	Offset     float64 `json:"offset"`
}

// Layout is the payload contract of a single PGN.
type Layout struct {
	PGN     uint32  `json:"pgn"`
	Name    string  `json:"name"`
	Fields  []Field `json:"fields"`
	Padding byte    `json:"padding"`
	Size    int     `json:"size"`
}

func lat() Field {
	return Field{Name: FieldLatitude, Width: 4, Signed: true, Resolution: 1e-7, Scale: 1e7}
}

func lon() Field {
	return Field{Name: FieldLongitude, Width: 4, Signed: true, Resolution: 1e-7, Scale: 1e7}
}

var layouts = map[uint32]*Layout{
	PositionRapidUpdate: {
		PGN:     PositionRapidUpdate,
		Name:    "Position, Rapid Update",
		Fields:  []Field{lat(), lon()},
		Padding: PadNotAvailable,
		Size:    8,
	},
	COGSOGRapidUpdate: {
		PGN:  COGSOGRapidUpdate,
		Name: "COG & SOG, Rapid Update",
		Fields: []Field{
			{Name: FieldCOG, Width: 2, Resolution: 1e-4},
			{Name: FieldSOG, Width: 2, Resolution: 0.01},
		},
		Padding: PadNotAvailable,
		Size:    8,
	},
	// fast-packet; the 10 reserved bytes and the tail up to 32 are zero
	GNSSPositionData: {
		PGN:  GNSSPositionData,
		Name: "GNSS Position Data",
		Fields: []Field{
			lat(),
			lon(),
			{Name: FieldAltitude, Width: 4, Signed: true, Resolution: 0.01, Scale: 100},
			{Name: FieldHDOP, Width: 2, Resolution: 0.01, Scale: 100},
			{Name: FieldVDOP, Width: 2, Resolution: 0.01, Scale: 100},
		},
		Padding: PadZero,
		Size:    32,
	},
	EngineHoursRevolutions: {
		PGN:  EngineHoursRevolutions,
		Name: "Engine Hours, Revolutions",
		Fields: []Field{
			{Name: FieldEngineHours, Width: 4, Resolution: 0.05},
		},
		Padding: PadNotAvailable,
		Size:    8,
	},
	DashDisplay: {
		PGN:  DashDisplay,
		Name: "Dash Display",
		Fields: []Field{
			{Name: FieldFuelLevel, Width: 1, Resolution: 0.4},
		},
		Padding: PadNotAvailable,
		Size:    8,
	},
	EngineTemperature1: {
		PGN:  EngineTemperature1,
		Name: "Engine Temperature 1",
		Fields: []Field{
			{Name: FieldCoolantTemp, Width: 1, Resolution: 1, Offset: -40},
		},
		Padding: PadNotAvailable,
		Size:    8,
	},
}

// Lookup returns the layout registered for pgn.
func Lookup(pgn uint32) (*Layout, bool) {
	l, ok := layouts[pgn]
	return l, ok
}

// Layouts returns every known layout ordered by PGN.
func Layouts() []*Layout {
	ret := make([]*Layout, 0, len(layouts))
	for _, l := range layouts {
		ret = append(ret, l)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i].PGN < ret[j].PGN
	})
	return ret
}

// FastPacket reports whether the payload does not fit a single CAN frame.
func (l *Layout) FastPacket() bool {
	return l.Size > 8
}

func (l *Layout) fieldsSize() int {
	n := 0
	for _, f := range l.Fields {
		n += f.Width
	}
	return n
}
