package alpaca

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hofis/alpacad/pkg/healthcheck"
)

// Device is a protocol adapter that can be mounted on the server. The
// handler packages satisfy it; the server needs nothing more than the
// identity fields and a place to hang the routes.
type Device interface {
	DeviceType() string
	DeviceNumber() int
	DeviceName() string
	InterfaceVersion() int
	RegisterRoutes(group *gin.RouterGroup)
}

// Server assembles the HTTP API, the device registry, the management
// endpoints and the UDP discovery responder into one Alpaca server.
type Server struct {
	config     *Config
	logger     *zap.Logger
	registry   *Registry
	router     *gin.Engine
	apiGroup   *gin.RouterGroup
	httpServer *http.Server
	discovery  *DiscoveryService
	health     *healthcheck.Registry
}

// NewServer creates a server from a validated configuration.
func NewServer(config *Config, logger *zap.Logger) (*Server, error) {
	if config == nil {
		config = &Config{}
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config:   config,
		logger:   logger.With(zap.String("component", "alpaca-server")),
		registry: NewRegistry(),
		health:   healthcheck.NewRegistry(),
	}
	s.setupRouter()
	return s, nil
}

// Registry exposes the device registry, mainly for tests and the
// management API.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Router exposes the underlying gin engine so tests can drive it with
// httptest without opening a socket.
func (s *Server) Router() http.Handler {
	return s.router
}

// Register adds a device to the registry and mounts its routes at
// /api/v1/{devicetype}/{devicenumber}. Duplicate type/number pairs are
// the caller's responsibility; later registrations shadow earlier
// routes and are almost certainly a configuration mistake.
func (s *Server) Register(device Device) {
	id := NewIdentity(device.DeviceName(), device.DeviceType(), device.DeviceNumber())
	s.registry.Add(id)

	group := s.apiGroup.Group(fmt.Sprintf("/%s/%d", device.DeviceType(), device.DeviceNumber()))
	device.RegisterRoutes(group)

	s.logger.Info("Device registered",
		zap.String("device_type", device.DeviceType()),
		zap.Int("device_number", device.DeviceNumber()),
		zap.String("device_name", device.DeviceName()),
		zap.String("unique_id", id.UniqueID))
}

func (s *Server) setupRouter() {
	if s.config.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// A request for a known path with the wrong verb must come back
	// as 405, not a 404 fallthrough.
	router.HandleMethodNotAllowed = true

	router.Use(RecoveryMiddleware(s.logger))
	router.Use(LoggingMiddleware(s.logger))
	if s.config.CORS.Enabled {
		router.Use(CORSMiddleware(s.config.CORS))
	}
	router.Use(AuthMiddleware(s.config.Authentication))

	management := NewManagementAPI(ServerDescription{
		ServerName:          s.config.Server.ServerName,
		Manufacturer:        s.config.Server.Manufacturer,
		ManufacturerVersion: s.config.Server.ManufacturerVersion,
		Location:            s.config.Server.Location,
	}, s.registry)
	management.RegisterRoutes(&router.RouterGroup)

	router.GET("/health", s.handleHealth)

	s.apiGroup = router.Group(fmt.Sprintf("/api/v%d", APIVersion))
	s.router = router
}

// AddHealthCheck registers a component probe served under /health.
func (s *Server) AddHealthCheck(c healthcheck.Checker) {
	s.health.Add(c)
}

func (s *Server) handleHealth(c *gin.Context) {
	report := s.health.Run()
	status := http.StatusOK
	if report.Status == healthcheck.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

// Start brings up discovery and the HTTP listener, then blocks until
// the context is cancelled or the listener fails. Shutdown is graceful
// with a 30 second drain.
func (s *Server) Start(ctx context.Context) error {
	apiPort, err := extractPort(s.config.Server.ListenAddress)
	if err != nil {
		return fmt.Errorf("cannot determine API port: %w", err)
	}

	s.discovery = NewDiscoveryService(s.config.Server.DiscoveryPort, apiPort, s.logger)
	if err := s.discovery.Start(); err != nil {
		return fmt.Errorf("failed to start discovery: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         s.config.Server.ListenAddress,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("Alpaca server listening",
			zap.String("address", s.config.Server.ListenAddress),
			zap.Int("devices", len(s.registry.List())))
		serverErrors <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		s.discovery.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutdown requested")
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	s.discovery.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Graceful shutdown failed, closing", zap.Error(err))
		return s.httpServer.Close()
	}

	s.logger.Info("Server stopped")
	return nil
}

// extractPort pulls the numeric port out of a listen address such as
// ":11111" or "0.0.0.0:11111".
func extractPort(addr string) (int, error) {
	idx := strings.LastIndex(addr, ":")
	if idx < 0 || idx == len(addr)-1 {
		return 0, fmt.Errorf("no port in address %q", addr)
	}
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid port in address %q: %w", addr, err)
	}
	return port, nil
}
