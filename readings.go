package pgnsim

import (
	"github.com/jd3nn1s/pgnsim/pgn"
)

// Readings is the set of physical values sent during one tick.
type Readings struct {
	Latitude  float64 `json:"latitude"`  // degrees
	Longitude float64 `json:"longitude"` // degrees
	COG       float64 `json:"cog"`       // degrees
	SOG       float64 `json:"sog"`       // m/s
	Altitude  float64 `json:"altitude"`  // m
	HDOP      float64 `json:"hdop"`
	VDOP      float64 `json:"vdop"`

	EngineHours float64 `json:"engine_hours"`
	FuelLevel   float64 `json:"fuel_level"`   // percent
	CoolantTemp float64 `json:"coolant_temp"` // °C
}

// DefaultReadings puts the simulated vessel near Fargo, ND.
func DefaultReadings() Readings {
	return Readings{
		Latitude:    46.81,
		Longitude:   -96.81,
		COG:         123.0,
		SOG:         4.2,
		Altitude:    299.0,
		HDOP:        0.9,
		VDOP:        1.1,
		EngineHours: 123.4,
		FuelLevel:   45.0,
		CoolantTemp: 82.0,
	}
}

type message struct {
	pgn      uint32
	every    int
	optional bool
	build    func(r *Readings) []byte
}

// Transmission order within a tick.
var messages = []message{
	{
		pgn:   pgn.PositionRapidUpdate,
		every: 1,
		build: func(r *Readings) []byte {
			return pgn.PositionRapid(r.Latitude, r.Longitude)
		},
	},
	{
		pgn:   pgn.COGSOGRapidUpdate,
		every: 1,
		build: func(r *Readings) []byte {
			return pgn.COGSOG(r.COG, r.SOG)
		},
	},
	{
		pgn:      pgn.GNSSPositionData,
		every:    1,
		optional: true,
		build: func(r *Readings) []byte {
			return pgn.GNSSDetailed(r.Latitude, r.Longitude, r.Altitude, r.HDOP, r.VDOP)
		},
	},
	{
		pgn:   pgn.EngineHoursRevolutions,
		every: 10,
		build: func(r *Readings) []byte {
			return pgn.EngineHours(r.EngineHours)
		},
	},
	{
		pgn:   pgn.DashDisplay,
		every: 1,
		build: func(r *Readings) []byte {
			return pgn.FuelLevel(r.FuelLevel)
		},
	},
	{
		pgn:   pgn.EngineTemperature1,
		every: 1,
		build: func(r *Readings) []byte {
			return pgn.EngineTemp(r.CoolantTemp)
		},
	},
}
