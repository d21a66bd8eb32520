// Package main is the entry point for the alpacad observatory device
// server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/hofis/alpacad/internal/config"
	"github.com/hofis/alpacad/internal/devices"
	"github.com/hofis/alpacad/internal/motion"
	"github.com/hofis/alpacad/internal/telemetry"
	"github.com/hofis/alpacad/pkg/alpaca"
	"github.com/hofis/alpacad/pkg/alpaca/handlers"
	"github.com/hofis/alpacad/pkg/healthcheck"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file")
	listenAddress := flag.String("listen", "", "HTTP listen address, overrides the config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error), overrides the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}
	if *listenAddress != "" {
		cfg.Alpaca.Server.ListenAddress = *listenAddress
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			panic("invalid configuration: " + err.Error())
		}
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Starting alpacad",
		zap.String("listen_address", cfg.Alpaca.Server.ListenAddress),
		zap.Int("discovery_port", cfg.Alpaca.Server.DiscoveryPort))

	// Simulated hardware.
	dome := devices.NewDome(cfg.Devices.Dome, logger)
	rotator := devices.NewRotator(cfg.Devices.Rotator, logger)
	focuser := devices.NewFocuser(cfg.Devices.Focuser, logger)
	wheel := devices.NewFilterWheel(cfg.Devices.FilterWheel, logger)
	coverCal := devices.NewCoverCalibrator(cfg.Devices.CoverCalibrator, logger)
	bank := devices.NewSwitchBank(cfg.Devices.Switches, logger)
	weather := devices.NewObservingConditions(cfg.Devices.ObservingConditions, logger)
	monitor := devices.NewSafetyMonitor(cfg.Devices.SafetyMonitor, weather, logger)

	// One ticker drives all time-based behavior.
	ticker := motion.NewTicker(cfg.Motion.TickInterval, logger)
	for _, d := range []motion.Tickable{dome, rotator, focuser, wheel, coverCal, weather, monitor} {
		ticker.Register(d)
	}

	server, err := alpaca.NewServer(&cfg.Alpaca, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}
	server.Register(handlers.NewDomeHandler(0, dome, logger))
	server.Register(handlers.NewRotatorHandler(0, rotator, logger))
	server.Register(handlers.NewFocuserHandler(0, focuser, logger))
	server.Register(handlers.NewFilterWheelHandler(0, wheel, logger))
	server.Register(handlers.NewCoverCalibratorHandler(0, coverCal, logger))
	server.Register(handlers.NewSwitchHandler(0, bank, logger))
	server.Register(handlers.NewObservingConditionsHandler(0, weather, logger))
	server.Register(handlers.NewSafetyMonitorHandler(0, monitor, logger))

	publisher, mqttClient := newPublisher(cfg.Telemetry, logger)
	publisher.Track("dome", 0, dome.Status)
	publisher.Track("rotator", 0, rotator.Status)
	publisher.Track("focuser", 0, focuser.Status)
	publisher.Track("filterwheel", 0, wheel.Status)
	publisher.Track("covercalibrator", 0, coverCal.Status)
	publisher.Track("switch", 0, bank.Status)
	publisher.Track("observingconditions", 0, weather.Status)
	publisher.Track("safetymonitor", 0, monitor.Status)
	monitor.OnChange(publisher.PublishSafety)

	if cfg.Telemetry.Enabled {
		server.AddHealthCheck(healthcheck.Named("telemetry", func() healthcheck.Result {
			if mqttClient.IsConnected() {
				return healthcheck.Ok("telemetry")
			}
			return healthcheck.Degraded("telemetry", "broker disconnected")
		}))
	}

	ticker.Start()
	defer ticker.Stop()

	if err := publisher.Start(); err != nil {
		logger.Fatal("Failed to start telemetry", zap.Error(err))
	}
	defer publisher.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}

	logger.Info("alpacad stopped")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Development || cfg.Level == "debug" {
		return zap.NewDevelopment()
	}

	zapCfg := zap.NewProductionConfig()
	switch cfg.Level {
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}
	return zapCfg.Build()
}

func newPublisher(cfg telemetry.Config, logger *zap.Logger) (*telemetry.Publisher, *telemetry.Client) {
	var client *telemetry.Client
	if cfg.Enabled {
		client = telemetry.NewClient(cfg, logger)
	}
	return telemetry.NewPublisher(cfg, client, logger), client
}
