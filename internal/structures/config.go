package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1|max:65535"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// StoreConfig describes the durable document store. An empty URI selects
// the in-memory fallback.
type StoreConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database" validate:"required"`
	Collection     string        `yaml:"collection" validate:"required"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
}

type IdentityConfig struct {
	DevMode   bool          `yaml:"devMode"`
	ClientID  string        `yaml:"clientId"`
	VerifyURL string        `yaml:"verifyUrl" validate:"required|fullUrl"`
	Timeout   time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Store     StoreConfig    `yaml:"store"`
	Identity  IdentityConfig `yaml:"identity"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
