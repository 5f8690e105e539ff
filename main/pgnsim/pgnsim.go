package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/jd3nn1s/pgnsim"
	"github.com/jd3nn1s/pgnsim/pgncan"
	"github.com/jd3nn1s/pgnsim/status"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

var (
	iface        = flag.String("interface", "", fmt.Sprintf("CAN transport, one of %v", pgncan.Interfaces()))
	channel      = flag.String("channel", "0", "CAN channel, e.g. 0, vcan0 or host:port for udp")
	bitrate      = flag.Int("bitrate", 250000, "CAN bitrate")
	configFile   = flag.String("config", "", "TOML file with simulated values")
	interval     = flag.Duration("interval", pgnsim.DefaultInterval, "time between ticks")
	source       = flag.String("source", pgnsim.SourceConstant, "reading source: constant or ramp")
	gnssDetailed = flag.Bool("gnss-detailed", false, "also send PGN 129029 every tick")
	statusAddr   = flag.String("status", "", "listen address of the JSON status endpoint, disabled when empty")
	logLevel     = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

// applyFlags overrides config with the flags given on the command line.
func applyFlags(config *pgnsim.Config, set map[string]bool) {
	if set["interval"] {
		config.Interval.Duration = *interval
	}
	if set["source"] {
		config.Source = *source
	}
	if set["gnss-detailed"] {
		config.GNSSDetailed = *gnssDetailed
	}
}

func setFlags() map[string]bool {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// startStatus serves the status endpoint until ctx is done. The returned
// channel is closed once the server has shut down.
func startStatus(ctx context.Context, addr string, src status.StatsSource) <-chan struct{} {
	done := make(chan struct{})
	if addr == "" {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		if err := status.NewServer(src).Start(ctx, addr); err != nil {
			log.WithField("err", err).Error("status server stopped")
		}
	}()
	return done
}

func main() {
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal("invalid log level: ", err)
	}
	log.SetLevel(level)

	if *iface == "" {
		flag.Usage()
		os.Exit(2)
	}

	config := pgnsim.DefaultConfig()
	if *configFile != "" {
		if config, err = pgnsim.LoadConfig(*configFile); err != nil {
			log.Fatal("unable to load configuration: ", err)
		}
	}
	applyFlags(config, setFlags())
	if err = config.Validate(); err != nil {
		log.Fatal("invalid configuration: ", err)
	}

	src, err := pgnsim.NewSource(config.Source, config.Readings, config.Interval.Duration)
	if err != nil {
		log.Fatal(err)
	}

	log.Info("connecting to CAN...")
	c, err := pgncan.Open(*iface, *channel, *bitrate)
	if err != nil {
		log.Fatal("unable to open CAN bus: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := pgnsim.NewSimulator(config, c, src)
	statusDone := startStatus(ctx, *statusAddr, sim)

	log.Info("press CTRL+C to stop")
	err = sim.Run(ctx)
	stop()
	<-statusDone
	if err != nil && err != context.Canceled {
		log.Fatal("simulator stopped: ", err)
	}
	log.Info("stopping simulator")
}
