package pgnsim

import (
	"sync"
	"time"
)

// Stats is a point in time copy of what the simulator has sent.
type Stats struct {
	Started  time.Time         `json:"started"`
	Ticks    uint64            `json:"ticks"`
	Messages map[uint32]uint64 `json:"messages"`
	Bytes    map[uint32]uint64 `json:"bytes"`
	Readings Readings          `json:"readings"`
}

type stats struct {
	mu sync.Mutex
	s  Stats
}

func newStats() *stats {
	return &stats{
		s: Stats{
			Started:  time.Now(),
			Messages: make(map[uint32]uint64),
			Bytes:    make(map[uint32]uint64),
		},
	}
}

func (st *stats) tick(r Readings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Ticks++
	st.s.Readings = r
}

func (st *stats) sent(pgn uint32, n int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Messages[pgn]++
	st.s.Bytes[pgn] += uint64(n)
}

func (st *stats) snapshot() Stats {
	st.mu.Lock()
	defer st.mu.Unlock()
	ret := st.s
	ret.Messages = make(map[uint32]uint64, len(st.s.Messages))
	for k, v := range st.s.Messages {
		ret.Messages[k] = v
	}
	ret.Bytes = make(map[uint32]uint64, len(st.s.Bytes))
	for k, v := range st.s.Bytes {
		ret.Bytes[k] = v
	}
	return ret
}
