package pgn

import (
	"encoding/binary"
	"github.com/pkg/errors"
	"math"
)

// Raw converts a physical value to its integer representation. Overflow is
// not detected; the caller masks to the field width.
func (f Field) Raw(value float64) int64 {
	if f.Scale != 0 {
		return int64((value - f.Offset) * f.Scale)
	}
	return int64((value - f.Offset) / f.Resolution)
}

// Value is the inverse of Raw for a value read back from the wire.
func (f Field) Value(raw int64) float64 {
	if f.Scale != 0 {
		return float64(raw)/f.Scale + f.Offset
	}
	return float64(raw)*f.Resolution + f.Offset
}

func (f Field) put(buf []byte, raw int64) {
	switch f.Width {
	case 1:
		buf[0] = uint8(raw)
	case 2:
		binary.LittleEndian.PutUint16(buf, uint16(raw))
	case 4:
		binary.LittleEndian.PutUint32(buf, uint32(raw))
	}
}

func (f Field) get(buf []byte) int64 {
	switch f.Width {
	case 1:
		if f.Signed {
			return int64(int8(buf[0]))
		}
		return int64(buf[0])
	case 2:
		v := binary.LittleEndian.Uint16(buf)
		if f.Signed {
			return int64(int16(v))
		}
		return int64(v)
	case 4:
		v := binary.LittleEndian.Uint32(buf)
		if f.Signed {
			return int64(int32(v))
		}
		return int64(v)
	}
	return 0
}

// Encode packs values into a payload of exactly l.Size bytes. Every field
// of the layout must have a value.
func (l *Layout) Encode(values map[string]float64) ([]byte, error) {
	buf := make([]byte, l.Size)
	off := 0
	for _, f := range l.Fields {
		v, ok := values[f.Name]
		if !ok {
			return nil, errors.Errorf("pgn %d: missing value for field %s", l.PGN, f.Name)
		}
		f.put(buf[off:off+f.Width], f.Raw(v))
		off += f.Width
	}
	for i := off; i < len(buf); i++ {
		buf[i] = l.Padding
	}
	return buf, nil
}

// Decode reads every field of the layout back from payload.
func (l *Layout) Decode(payload []byte) (map[string]float64, error) {
	if len(payload) < l.fieldsSize() {
		return nil, errors.Errorf("pgn %d: payload too short: %d bytes", l.PGN, len(payload))
	}
	ret := make(map[string]float64, len(l.Fields))
	off := 0
	for _, f := range l.Fields {
		ret[f.Name] = f.Value(f.get(payload[off : off+f.Width]))
		off += f.Width
	}
	return ret, nil
}

// Encode packs values with the layout registered for pgn.
func Encode(pgn uint32, values map[string]float64) ([]byte, error) {
	l, ok := Lookup(pgn)
	if !ok {
		return nil, errors.Errorf("unknown pgn %d", pgn)
	}
	return l.Encode(values)
}

// Decode unpacks payload with the layout registered for pgn.
func Decode(pgn uint32, payload []byte) (map[string]float64, error) {
	l, ok := Lookup(pgn)
	if !ok {
		return nil, errors.Errorf("unknown pgn %d", pgn)
	}
	return l.Decode(payload)
}

func mustEncode(pgn uint32, values map[string]float64) []byte {
	b, err := Encode(pgn, values)
	if err != nil {
		panic(err)
	}
	return b
}

func radians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// PositionRapid builds PGN 129025 from degrees.
func PositionRapid(latDeg, lonDeg float64) []byte {
	return mustEncode(PositionRapidUpdate, map[string]float64{
		FieldLatitude:  latDeg,
		FieldLongitude: lonDeg,
	})
}

// COGSOG builds PGN 129026. Course is given in degrees and sent in radians.
func COGSOG(cogDeg, sogMS float64) []byte {
	return mustEncode(COGSOGRapidUpdate, map[string]float64{
		FieldCOG: radians(cogDeg),
		FieldSOG: sogMS,
	})
}

// GNSSDetailed builds the simplified 32 byte PGN 129029.
func GNSSDetailed(latDeg, lonDeg, altM, hdop, vdop float64) []byte {
	return mustEncode(GNSSPositionData, map[string]float64{
		FieldLatitude:  latDeg,
		FieldLongitude: lonDeg,
		FieldAltitude:  altM,
		FieldHDOP:      hdop,
		FieldVDOP:      vdop,
	})
}

// EngineHours builds J1939 PGN 65253 (SPN 247).
func EngineHours(hours float64) []byte {
	return mustEncode(EngineHoursRevolutions, map[string]float64{
		FieldEngineHours: hours,
	})
}

// FuelLevel builds J1939 PGN 65276 (SPN 96).
func FuelLevel(percent float64) []byte {
	return mustEncode(DashDisplay, map[string]float64{
		FieldFuelLevel: percent,
	})
}

// EngineTemp builds J1939 PGN 65262 (SPN 110).
func EngineTemp(tempC float64) []byte {
	return mustEncode(EngineTemperature1, map[string]float64{
		FieldCoolantTemp: tempC,
	})
}
