package alpaca

import (
	"fmt"
	"time"
)

// Config holds the protocol server configuration.
type Config struct {
	Server         ServerConfig `mapstructure:"server" json:"server" yaml:"server"`
	Authentication AuthConfig   `mapstructure:"authentication" json:"authentication" yaml:"authentication"`
	CORS           CORSConfig   `mapstructure:"cors" json:"cors" yaml:"cors"`
}

// ServerConfig holds HTTP listener settings and the identity reported
// by the management API.
type ServerConfig struct {
	ListenAddress       string        `mapstructure:"listen_address" json:"listen_address" yaml:"listen_address"`
	DiscoveryPort       int           `mapstructure:"discovery_port" json:"discovery_port" yaml:"discovery_port"`
	ReadTimeout         time.Duration `mapstructure:"read_timeout" json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout        time.Duration `mapstructure:"write_timeout" json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout         time.Duration `mapstructure:"idle_timeout" json:"idle_timeout" yaml:"idle_timeout"`
	ServerName          string        `mapstructure:"server_name" json:"server_name" yaml:"server_name"`
	Manufacturer        string        `mapstructure:"manufacturer" json:"manufacturer" yaml:"manufacturer"`
	ManufacturerVersion string        `mapstructure:"manufacturer_version" json:"manufacturer_version" yaml:"manufacturer_version"`
	Location            string        `mapstructure:"location" json:"location" yaml:"location"`
	Debug               bool          `mapstructure:"debug" json:"debug" yaml:"debug"`
}

// AuthConfig holds optional HTTP basic authentication settings. The
// Alpaca protocol itself is unauthenticated; this gate is for servers
// exposed beyond a trusted network.
type AuthConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Username string `mapstructure:"username" json:"username" yaml:"username"`
	Password string `mapstructure:"password" json:"password" yaml:"password"`
	Realm    string `mapstructure:"realm" json:"realm" yaml:"realm"`
}

// CORSConfig holds cross-origin settings for browser-based clients.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods" json:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers" json:"allowed_headers" yaml:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = fmt.Sprintf(":%d", DefaultAPIPort)
	}
	if c.Server.DiscoveryPort == 0 {
		c.Server.DiscoveryPort = DefaultDiscoveryPort
	}
	if c.Server.DiscoveryPort < 0 || c.Server.DiscoveryPort > 65535 {
		return fmt.Errorf("invalid discovery port: %d", c.Server.DiscoveryPort)
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ServerName == "" {
		c.Server.ServerName = "Hofis Observatory Server"
	}
	if c.Server.Manufacturer == "" {
		c.Server.Manufacturer = "Hofis"
	}
	if c.Server.ManufacturerVersion == "" {
		c.Server.ManufacturerVersion = "0.1.0"
	}
	if c.Server.Location == "" {
		c.Server.Location = "Observatory"
	}
	if c.Authentication.Enabled {
		if c.Authentication.Username == "" || c.Authentication.Password == "" {
			return fmt.Errorf("authentication enabled but username or password missing")
		}
		if c.Authentication.Realm == "" {
			c.Authentication.Realm = "Alpaca"
		}
	}
	if c.CORS.Enabled {
		if len(c.CORS.AllowedOrigins) == 0 {
			c.CORS.AllowedOrigins = []string{"*"}
		}
		if len(c.CORS.AllowedMethods) == 0 {
			c.CORS.AllowedMethods = []string{"GET", "PUT", "OPTIONS"}
		}
		if len(c.CORS.AllowedHeaders) == 0 {
			c.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
		}
		if c.CORS.MaxAge == 0 {
			c.CORS.MaxAge = 3600
		}
	}
	return nil
}
