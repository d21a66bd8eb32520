package telemetry

import (
	"time"

	"go.uber.org/zap"
)

// source is one tracked device: its topic and the function producing
// its snapshot.
type source struct {
	topic  string
	status func() interface{}
}

// SafetyEvent is the payload published on safety verdict changes.
type SafetyEvent struct {
	Safe bool      `json:"safe"`
	At   time.Time `json:"at"`
}

// Publisher periodically publishes each tracked device's state
// snapshot, and safety events as they happen. With telemetry disabled
// every method is a no-op, so callers wire it unconditionally.
type Publisher struct {
	config  Config
	client  *Client
	logger  *zap.Logger
	sources []source
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewPublisher creates a publisher. The client may be nil when
// telemetry is disabled.
func NewPublisher(config Config, client *Client, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		config: config,
		client: client,
		logger: logger.With(zap.String("component", "telemetry")),
	}
}

// Track registers a device snapshot source. Must be called before
// Start.
func (p *Publisher) Track(deviceType string, number int, status func() interface{}) {
	p.sources = append(p.sources, source{
		topic:  StateTopic(p.config.TopicPrefix, deviceType, number),
		status: status,
	})
}

// Start connects to the broker and begins the publish loop.
func (p *Publisher) Start() error {
	if !p.config.Enabled {
		return nil
	}
	if err := p.client.Connect(); err != nil {
		return err
	}

	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	go p.loop()

	p.logger.Info("Telemetry started",
		zap.Duration("interval", p.config.Interval),
		zap.Int("sources", len(p.sources)))
	return nil
}

// Stop halts the publish loop and disconnects.
func (p *Publisher) Stop() {
	if !p.config.Enabled || p.stopCh == nil {
		return
	}
	close(p.stopCh)
	<-p.doneCh
	p.client.Disconnect()
}

// PublishSafety publishes a safety verdict change. Wired to the safety
// monitor's change callback.
func (p *Publisher) PublishSafety(safe bool) {
	if !p.config.Enabled || !p.client.IsConnected() {
		return
	}
	event := SafetyEvent{Safe: safe, At: time.Now().UTC()}
	if err := p.client.PublishJSON(SafetyTopic(p.config.TopicPrefix), false, event); err != nil {
		p.logger.Warn("Failed to publish safety event", zap.Error(err))
	}
}

func (p *Publisher) loop() {
	defer close(p.doneCh)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.publishAll()
		}
	}
}

func (p *Publisher) publishAll() {
	if !p.client.IsConnected() {
		return
	}
	for _, s := range p.sources {
		if err := p.client.PublishJSON(s.topic, p.config.Retain, s.status()); err != nil {
			p.logger.Warn("Failed to publish state",
				zap.String("topic", s.topic),
				zap.Error(err))
		}
	}
}
