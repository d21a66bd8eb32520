package alpaca

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
)

// DiscoveryResponse is the JSON payload returned to a discovery
// broadcast.
type DiscoveryResponse struct {
	AlpacaPort int `json:"AlpacaPort"`
}

// DiscoveryService answers Alpaca UDP discovery broadcasts with the
// port the HTTP API listens on.
type DiscoveryService struct {
	port    int
	apiPort int
	logger  *zap.Logger
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewDiscoveryService creates a responder listening on the given UDP
// port and advertising the given API port.
func NewDiscoveryService(port, apiPort int, logger *zap.Logger) *DiscoveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DiscoveryService{
		port:    port,
		apiPort: apiPort,
		logger:  logger.With(zap.String("component", "discovery")),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start begins answering broadcasts in a background goroutine.
func (d *DiscoveryService) Start() error {
	addr := &net.UDPAddr{IP: net.IPv4zero, Port: d.port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to create UDP listener: %w", err)
	}

	d.logger.Info("Discovery service listening",
		zap.String("listen_address", conn.LocalAddr().String()),
		zap.Int("api_port", d.apiPort))

	go d.loop(conn)
	return nil
}

// Stop shuts the responder down and waits for the loop to exit.
func (d *DiscoveryService) Stop() {
	close(d.stopCh)
	<-d.doneCh
	d.logger.Info("Discovery service stopped")
}

func (d *DiscoveryService) loop(conn *net.UDPConn) {
	defer close(d.doneCh)
	defer func() { _ = conn.Close() }()

	response, err := json.Marshal(DiscoveryResponse{AlpacaPort: d.apiPort})
	if err != nil {
		d.logger.Error("Failed to marshal discovery response", zap.Error(err))
		return
	}

	buffer := make([]byte, 1024)
	for {
		select {
		case <-d.stopCh:
			return
		default:
			// Short read deadline so the loop polls stopCh.
			_ = conn.SetReadDeadline(time.Now().Add(time.Second))

			n, remoteAddr, err := conn.ReadFromUDP(buffer)
			if err != nil {
				if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
					continue
				}
				d.logger.Warn("Error reading UDP packet", zap.Error(err))
				continue
			}

			// The protocol specifies the exact datagram; anything
			// else is ignored.
			if string(buffer[:n]) != DiscoveryMessage {
				d.logger.Debug("Ignoring non-discovery datagram",
					zap.String("from", remoteAddr.String()))
				continue
			}

			if _, err := conn.WriteToUDP(response, remoteAddr); err != nil {
				d.logger.Error("Failed to send discovery response",
					zap.String("to", remoteAddr.String()),
					zap.Error(err))
				continue
			}

			d.logger.Debug("Discovery response sent",
				zap.String("to", remoteAddr.String()))
		}
	}
}
