package main

import (
	"context"
	"github.com/jd3nn1s/pgnsim"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestApplyFlags(t *testing.T) {
	config := pgnsim.DefaultConfig()
	config.GNSSDetailed = true

	// nothing set on the command line, config wins
	applyFlags(config, map[string]bool{})
	assert.Equal(t, pgnsim.DefaultInterval, config.Interval.Duration)
	assert.True(t, config.GNSSDetailed)

	*interval = time.Second
	*source = pgnsim.SourceRamp
	*gnssDetailed = false
	applyFlags(config, map[string]bool{
		"interval":      true,
		"source":        true,
		"gnss-detailed": true,
	})
	assert.Equal(t, time.Second, config.Interval.Duration)
	assert.Equal(t, pgnsim.SourceRamp, config.Source)
	assert.False(t, config.GNSSDetailed)
}

type statsStub struct{}

func (statsStub) Stats() pgnsim.Stats {
	return pgnsim.Stats{}
}

func TestStartStatusDisabled(t *testing.T) {
	done := startStatus(context.Background(), "", statsStub{})
	select {
	case <-done:
	default:
		t.Fatal("disabled status server should report done immediately")
	}
}

func TestStartStatusWaitsForShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := startStatus(ctx, "127.0.0.1:0", statsStub{})

	select {
	case <-done:
		t.Fatal("status server stopped before cancel")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second * 3):
		t.Fatal("status server did not shut down")
	}
}
