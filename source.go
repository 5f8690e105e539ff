package pgnsim

import (
	"github.com/pkg/errors"
	"time"
)

const (
	SourceConstant = "constant"
	SourceRamp     = "ramp"
)

// Source produces the readings for the next tick.
type Source interface {
	Next() Readings
}

type constantSource struct {
	r Readings
}

func (c *constantSource) Next() Readings {
	return c.r
}

// rampSource walks speed, course, coolant temperature and position up and
// down between fixed bounds, burns fuel and accumulates engine hours.
type rampSource struct {
	cur      Readings
	interval time.Duration
	started  bool

	speedDown   bool
	coolantDown bool
}

const (
	maxRampSOG      = 10.0
	minRampCoolant  = 60.0
	maxRampCoolant  = 110.0
	rampSOGStep     = 0.1
	rampCOGStep     = 1.0
	rampCoolantStep = 0.5
	rampFuelStep    = 0.01
	// ~1 m
	rampPositionStep = 0.00001
)

func (r *rampSource) Next() Readings {
	if !r.started {
		r.started = true
		return r.cur
	}

	if r.speedDown {
		r.cur.SOG -= rampSOGStep
		r.cur.Latitude -= rampPositionStep
		r.cur.Longitude -= rampPositionStep
	} else {
		r.cur.SOG += rampSOGStep
		r.cur.Latitude += rampPositionStep
		r.cur.Longitude += rampPositionStep
	}
	if r.cur.SOG <= 0 {
		r.cur.SOG = 0
		r.speedDown = false
	} else if r.cur.SOG >= maxRampSOG {
		r.cur.SOG = maxRampSOG
		r.speedDown = true
	}

	r.cur.COG += rampCOGStep
	if r.cur.COG >= 360 {
		r.cur.COG -= 360
	}

	if r.coolantDown {
		r.cur.CoolantTemp -= rampCoolantStep
	} else {
		r.cur.CoolantTemp += rampCoolantStep
	}
	if r.cur.CoolantTemp >= maxRampCoolant {
		r.coolantDown = true
	} else if r.cur.CoolantTemp <= minRampCoolant {
		r.coolantDown = false
	}

	r.cur.FuelLevel -= rampFuelStep
	if r.cur.FuelLevel <= 0 {
		r.cur.FuelLevel = 100
	}

	r.cur.EngineHours += r.interval.Hours()
	return r.cur
}

// NewSource returns the named reading source starting from initial.
func NewSource(name string, initial Readings, interval time.Duration) (Source, error) {
	switch name {
	case "", SourceConstant:
		return &constantSource{r: initial}, nil
	case SourceRamp:
		return &rampSource{cur: initial, interval: interval}, nil
	}
	return nil, errors.Errorf("unknown reading source %q", name)
}
