// Package telemetry publishes periodic device state snapshots and
// safety events to an MQTT broker so dashboards and automation can
// follow the observatory without polling the HTTP API.
package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Config holds the telemetry settings. Telemetry is optional; with
// Enabled false nothing connects and the publisher stays idle.
type Config struct {
	Enabled     bool          `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	BrokerURL   string        `mapstructure:"broker_url" json:"broker_url" yaml:"broker_url"`
	ClientID    string        `mapstructure:"client_id" json:"client_id" yaml:"client_id"`
	Username    string        `mapstructure:"username" json:"username" yaml:"username"`
	Password    string        `mapstructure:"password" json:"password" yaml:"password"`
	TopicPrefix string        `mapstructure:"topic_prefix" json:"topic_prefix" yaml:"topic_prefix"`
	Interval    time.Duration `mapstructure:"interval" json:"interval" yaml:"interval"`
	Retain      bool          `mapstructure:"retain" json:"retain" yaml:"retain"`
}

// Validate fills in defaults.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.BrokerURL == "" {
		return fmt.Errorf("telemetry enabled but broker_url missing")
	}
	if c.ClientID == "" {
		c.ClientID = "alpacad"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "observatory"
	}
	if c.Interval <= 0 {
		c.Interval = 10 * time.Second
	}
	return nil
}

// Client wraps the paho MQTT client with reconnection and JSON
// publishing.
type Client struct {
	client mqtt.Client
	logger *zap.Logger
	config Config
}

// NewClient creates an MQTT client from the telemetry configuration.
func NewClient(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "telemetry"))

	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.BrokerURL)
	opts.SetClientID(config.ClientID)
	if config.Username != "" {
		opts.SetUsername(config.Username)
	}
	if config.Password != "" {
		opts.SetPassword(config.Password)
	}
	opts.SetKeepAlive(30 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Minute)

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		logger.Warn("Broker connection lost", zap.Error(err))
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		logger.Info("Connected to broker", zap.String("broker", config.BrokerURL))
	})

	return &Client{
		client: mqtt.NewClient(opts),
		logger: logger,
		config: config,
	}
}

// Connect establishes the broker connection.
func (c *Client) Connect() error {
	token := c.client.Connect()
	if !token.WaitTimeout(15 * time.Second) {
		return fmt.Errorf("broker connection timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	return nil
}

// Disconnect closes the broker connection.
func (c *Client) Disconnect() {
	c.client.Disconnect(250)
	c.logger.Info("Disconnected from broker")
}

// IsConnected reports whether the broker connection is up.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

// PublishJSON marshals the payload and publishes it at QoS 0.
func (c *Client) PublishJSON(topic string, retained bool, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := c.client.Publish(topic, 0, retained, data)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	c.logger.Debug("Published", zap.String("topic", topic), zap.Int("size", len(data)))
	return nil
}
