package main

import (
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sarchlab/slipswitch/config"
	"github.com/sarchlab/slipswitch/driver"
	"github.com/sarchlab/slipswitch/switching"
	"github.com/sarchlab/slipswitch/traffic"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a switch simulation from the scenario config",
	RunE:  runSimulation,
}

// simHost counts the packets delivered to its port.
type simHost struct {
	addr     switching.Addr
	received uint64
}

func (h *simHost) Addr() switching.Addr {
	return h.addr
}

func (h *simHost) Recv(switching.Packet) {
	h.received++
}

func runSimulation(*cobra.Command, []string) error {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return err
		}
	}

	log := cfg.Log.NewLogger(os.Stderr)

	metrics := switching.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		return err
	}

	if cfg.Metrics.Enabled {
		serveMetrics(cfg.Metrics.Listen, registry, log)
	}

	numPorts := cfg.Switch.Ports
	addrs := portAddrs(cfg.Switch.AddrProfile, numPorts)

	builder := switching.NewBuilder().
		WithNumPorts(numPorts).
		WithMetrics(metrics)
	if cfg.Switch.AddrProfile == "ethernet" {
		builder = builder.WithAddrDesc(switching.EthernetAddrDesc())
	}
	if cfg.Switch.Rounds > 0 {
		builder = builder.WithRounds(cfg.Switch.Rounds)
	}
	sw := builder.Build()

	hosts := make([]*simHost, numPorts)
	for port := range hosts {
		hosts[port] = &simHost{addr: addrs[port]}
	}

	rng := rand.New(rand.NewSource(cfg.Traffic.Seed))

	log.Info().
		Int("ports", numPorts).
		Str("pattern", cfg.Traffic.Pattern).
		Float64("rate", cfg.Traffic.Rate).
		Str("driver", cfg.Run.Driver).
		Msg("simulation configured")

	switch cfg.Run.Driver {
	case "event":
		b := driver.NewEventDriverBuilder().
			WithSwitch(sw).
			WithSlots(cfg.Run.Slots).
			WithLogger(log)
		for port := range hosts {
			if res := sw.RegisterHost(hosts[port], port); res != switching.RegisterOK {
				return fmt.Errorf("registering host at port %d: %s", port, res)
			}
			b = b.WithSource(port, portSource(cfg, rng, port, addrs))
		}

		d, err := b.Build()
		if err != nil {
			return err
		}
		d.Run()

	default:
		b := driver.NewCycleDriverBuilder().
			WithSwitch(sw).
			WithLogger(log)
		for port := range hosts {
			b = b.WithHost(port, hosts[port]).
				WithSource(port, portSource(cfg, rng, port, addrs))
		}

		d, err := b.Build()
		if err != nil {
			return err
		}
		d.Run(cfg.Run.Slots)
	}

	reportCounters(registry, log)
	for port, h := range hosts {
		log.Debug().Int("port", port).Uint64("received", h.received).
			Msg("host totals")
	}

	return nil
}

// portAddrs fixes one address per port: big-endian port numbers for the
// default profile, locally administered MACs for the ethernet profile.
func portAddrs(profile string, numPorts int) []switching.Addr {
	addrs := make([]switching.Addr, numPorts)
	for port := range addrs {
		if profile == "ethernet" {
			addrs[port] = switching.Addr{0x02, 0, 0, 0, 0, byte(port)}
		} else {
			addrs[port] = switching.NewUintAddr(uint32(port))
		}
	}

	return addrs
}

func portSource(
	cfg config.Config,
	rng *rand.Rand,
	port int,
	addrs []switching.Addr,
) driver.Source {
	numPorts := len(addrs)

	var gen traffic.Generator
	switch {
	case cfg.Switch.AddrProfile == "ethernet":
		src := net.HardwareAddr{0x02, 0xff, 0, 0, 0, byte(port)}
		gen = traffic.Ethernet(rng, src, etherDsts(cfg, port, addrs))
	case cfg.Traffic.Pattern == "constant":
		gen = traffic.Constant(addrs[(port+1)%numPorts])
	default:
		gen = traffic.Uniform(rng, addrs)
	}

	if cfg.Traffic.Rate < 1 {
		gen = traffic.Rate(rng, cfg.Traffic.Rate, gen)
	}

	return driver.Source(gen)
}

func etherDsts(cfg config.Config, port int, addrs []switching.Addr) []net.HardwareAddr {
	if cfg.Traffic.Pattern == "constant" {
		return []net.HardwareAddr{
			net.HardwareAddr(addrs[(port+1)%len(addrs)]),
		}
	}

	dsts := make([]net.HardwareAddr, len(addrs))
	for i, a := range addrs {
		dsts[i] = net.HardwareAddr(a)
	}

	return dsts
}

func serveMetrics(listen string, registry *prometheus.Registry, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		registry, promhttp.HandlerOpts{}))

	go func() {
		log.Info().Str("listen", listen).Msg("serving metrics")
		if err := http.ListenAndServe(listen, mux); err != nil {
			log.Error().Err(err).Msg("metrics endpoint failed")
		}
	}()
}

func reportCounters(registry *prometheus.Registry, log zerolog.Logger) {
	families, err := registry.Gather()
	if err != nil {
		log.Error().Err(err).Msg("gathering counters")
		return
	}

	evt := log.Info()
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if metric.GetCounter() != nil {
				evt = evt.Float64(family.GetName(), metric.GetCounter().GetValue())
			}
		}
	}
	evt.Msg("packet counters")
}
