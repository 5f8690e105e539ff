package status

import (
	"context"
	"encoding/json"
	"github.com/jd3nn1s/pgnsim"
	"github.com/jd3nn1s/pgnsim/pgn"
	"github.com/stretchr/testify/assert"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type statsStub struct {
	stats pgnsim.Stats
}

func (s *statsStub) Stats() pgnsim.Stats {
	return s.stats
}

func newStatsStub() *statsStub {
	return &statsStub{
		stats: pgnsim.Stats{
			Started: time.Now().Add(-time.Minute),
			Ticks:   10,
			Messages: map[uint32]uint64{
				pgn.PositionRapidUpdate:    10,
				pgn.EngineHoursRevolutions: 1,
			},
			Bytes: map[uint32]uint64{
				pgn.PositionRapidUpdate:    80,
				pgn.EngineHoursRevolutions: 8,
			},
			Readings: pgnsim.DefaultReadings(),
		},
	}
}

func TestIndex(t *testing.T) {
	router := NewRouter(newStatsStub())

	for _, path := range []string{"/", "/status"} {
		req, err := http.NewRequest("GET", path, nil)
		assert.NoError(t, err)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json; charset=UTF-8", rr.Header().Get("Content-Type"))

		var resp Response
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, uint64(10), resp.Ticks)
		assert.Equal(t, uint64(10), resp.Messages["129025"])
		assert.Equal(t, uint64(1), resp.Messages["65253"])
		assert.Equal(t, uint64(80), resp.Bytes["129025"])
		assert.Equal(t, pgnsim.DefaultReadings(), resp.Readings)
		assert.Equal(t, "1m0s", resp.Uptime)
	}
}

func TestPGNs(t *testing.T) {
	req, err := http.NewRequest("GET", "/pgns", nil)
	assert.NoError(t, err)
	rr := httptest.NewRecorder()
	NewRouter(newStatsStub()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var layouts []pgn.Layout
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &layouts))
	assert.Len(t, layouts, 6)
	assert.Equal(t, pgn.EngineHoursRevolutions, layouts[0].PGN)
	assert.Equal(t, 32, layouts[len(layouts)-1].Size)
}

func TestMethodNotAllowed(t *testing.T) {
	req, err := http.NewRequest("POST", "/status", nil)
	assert.NoError(t, err)
	rr := httptest.NewRecorder()
	NewRouter(newStatsStub()).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestServerStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewServer(newStatsStub())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx, "127.0.0.1:0")
	}()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second * 3):
		t.Fatal("status server did not stop")
	}
}

func TestServerStartBadAddr(t *testing.T) {
	s := NewServer(newStatsStub())
	assert.Error(t, s.Start(context.Background(), "256.0.0.1:bad"))
}
