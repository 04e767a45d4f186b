// Command oledcpu-agent feeds CPU load to the bar display over serial.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"oledcpu/agent/config"
	"oledcpu/agent/link"
	"oledcpu/agent/metrics"
	"oledcpu/agent/sampler"
	"oledcpu/internal/buildinfo"
)

var (
	configPath  = "/etc/oledcpu/agent.yaml"
	port        string
	metricsAddr string
	noMemory    bool
)

func init() {
	if val := os.Getenv("OLEDCPU_CONFIG"); val != "" {
		configPath = val
	}
	flag.StringVar(&configPath, "config", configPath, "Agent YAML config file.")
	flag.StringVar(&port, "port", "", "Serial device, overrides the config.")
	flag.StringVar(&metricsAddr, "metrics", "", "Prometheus listen address, overrides the config.")
	flag.BoolVar(&noMemory, "no-memory", false, "Do not send the memory bar.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}
	if metricsAddr != "" {
		cfg.MetricsListen = metricsAddr
	}
	if noMemory {
		off := false
		cfg.IncludeMemory = &off
	}
	glog.Infof("oledcpu-agent %s: port=%s baud=%d memory=%v", buildinfo.String(), cfg.Port, cfg.Baud, cfg.Memory())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := sampler.New(cfg.ProcRoot)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)
	if cfg.MetricsListen != "" {
		go func() {
			glog.Infof("metrics on http://%s/metrics", cfg.MetricsListen)
			if err := metrics.Serve(ctx, cfg.MetricsListen, reg); err != nil {
				glog.Errorf("metrics: %v", err)
			}
		}()
	}

	p, err := link.Open(cfg.Port, cfg.Baud, cfg.ReadTimeout)
	if err != nil {
		return err
	}
	defer p.Close()

	srv := &link.Server{
		Port:       p,
		Source:     src,
		Memory:     cfg.Memory(),
		TimeoutEOF: true,
		Metrics:    m,
	}
	err = srv.Serve(ctx)
	glog.Infof("shutting down")
	return err
}
