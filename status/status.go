// Package status serves what the simulator has sent so far as JSON.
package status

import (
	"context"
	"encoding/json"
	"github.com/gorilla/mux"
	"github.com/jd3nn1s/pgnsim"
	"github.com/jd3nn1s/pgnsim/pgn"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"net"
	"net/http"
	"strconv"
	"time"
)

type StatsSource interface {
	Stats() pgnsim.Stats
}

type Response struct {
	Started  time.Time         `json:"started"`
	Uptime   string            `json:"uptime"`
	Ticks    uint64            `json:"ticks"`
	Messages map[string]uint64 `json:"messages"`
	Bytes    map[string]uint64 `json:"bytes"`
	Readings pgnsim.Readings   `json:"readings"`
}

type Server struct {
	src    StatsSource
	server *http.Server
}

func NewRouter(src StatsSource) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/", Index(src)).Methods(http.MethodGet)
	router.HandleFunc("/status", Index(src)).Methods(http.MethodGet)
	router.HandleFunc("/pgns", PGNs).Methods(http.MethodGet)
	return router
}

func byPGN(m map[uint32]uint64) map[string]uint64 {
	ret := make(map[string]uint64, len(m))
	for k, v := range m {
		ret[strconv.FormatUint(uint64(k), 10)] = v
	}
	return ret
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithField("err", err).Warn("unable to encode status response")
	}
}

// Index reports counters and the last readings.
func Index(src StatsSource) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		stats := src.Stats()
		writeJSON(w, Response{
			Started:  stats.Started,
			Uptime:   time.Since(stats.Started).Truncate(time.Second).String(),
			Ticks:    stats.Ticks,
			Messages: byPGN(stats.Messages),
			Bytes:    byPGN(stats.Bytes),
			Readings: stats.Readings,
		})
	}
}

// PGNs lists the payload layouts the simulator can send.
func PGNs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, pgn.Layouts())
}

func NewServer(src StatsSource) *Server {
	return &Server{src: src}
}

// Start listens on addr and serves until ctx is done and shutdown has
// completed.
func (s *Server) Start(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "unable to listen on %s", addr)
	}
	s.server = &http.Server{Handler: NewRouter(s.src)}

	shutdown := make(chan struct{})
	go func() {
		defer close(shutdown)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.WithField("err", err).Warn("unable to shut down status server")
		}
	}()

	log.WithField("addr", l.Addr().String()).Info("status server listening")
	if err := s.server.Serve(l); err != http.ErrServerClosed {
		return err
	}
	// Serve returns as soon as Shutdown begins
	<-shutdown
	return nil
}
