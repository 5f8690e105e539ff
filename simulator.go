package pgnsim

import (
	"context"
	log "github.com/sirupsen/logrus"
	"time"
)

type Simulator struct {
	config *Config
	sender Sender
	source Source
	stats  *stats

	// to allow testing
	sleep func(ctx context.Context, d time.Duration) error
}

func NewSimulator(config *Config, sender Sender, source Source) *Simulator {
	return &Simulator{
		config: config,
		sender: sender,
		source: source,
		stats:  newStats(),
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns the counters collected so far. Safe to call while Run is
// active.
func (s *Simulator) Stats() Stats {
	return s.stats.snapshot()
}

// Run sends one tick of messages every interval until ctx is done or a send
// fails. The sender is closed on return either way.
func (s *Simulator) Run(ctx context.Context) error {
	defer s.close()
	log.WithField("interval", s.config.Interval.Duration).
		WithField("sender", s.sender.Name()).
		Info("simulator running")

	for tick := 0; ; tick++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := s.Tick(tick); err != nil {
			return err
		}
		if err := s.sleep(ctx, s.config.Interval.Duration); err != nil {
			return err
		}
	}
}

// Tick sends every message scheduled for tick. Engine hours go out on every
// tenth tick, everything else on every tick.
func (s *Simulator) Tick(tick int) error {
	r := s.source.Next()
	s.stats.tick(r)
	for _, m := range messages {
		if m.optional && !s.config.GNSSDetailed {
			continue
		}
		if tick%m.every != 0 {
			continue
		}
		payload := m.build(&r)
		if err := s.sender.Send(s.config.Priority, m.pgn, s.config.SourceAddress, payload); err != nil {
			return err
		}
		s.stats.sent(m.pgn, len(payload))
	}
	return nil
}

func (s *Simulator) close() {
	if err := s.sender.Close(); err != nil {
		log.WithField("err", err).Warnf("%s: unable to close", s.sender.Name())
		return
	}
	log.Infof("%s: closed", s.sender.Name())
}
