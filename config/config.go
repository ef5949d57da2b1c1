package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rustyeddy/fxbot/market"
	"gopkg.in/yaml.v3"
)

// Config represents the complete daemon configuration
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Broker   BrokerConfig   `json:"broker" yaml:"broker"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// ServerConfig contains webhook server parameters
type ServerConfig struct {
	Listen string `json:"listen" yaml:"listen"`
}

// BrokerConfig selects the broker environment. Credentials come from the
// environment, never from the config file.
type BrokerConfig struct {
	Env string `json:"env" yaml:"env"` // "practice" or "live"
}

// StrategyConfig contains strategy-loop parameters
type StrategyConfig struct {
	Watchlist   []string `json:"watchlist" yaml:"watchlist"`
	Granularity string   `json:"granularity" yaml:"granularity"`
	CandleCount int      `json:"candle_count" yaml:"candle_count"`
	ShortWindow int      `json:"short_window" yaml:"short_window"`
	LongWindow  int      `json:"long_window" yaml:"long_window"`
	RSIPeriod   int      `json:"rsi_period" yaml:"rsi_period"`
	Oversold    float64  `json:"oversold" yaml:"oversold"`
	Overbought  float64  `json:"overbought" yaml:"overbought"`
	StopPips    float64  `json:"stop_pips" yaml:"stop_pips"`
	RewardRatio float64  `json:"reward_ratio" yaml:"reward_ratio"`
	Interval    string   `json:"interval" yaml:"interval"` // e.g. "5m"
}

// ParseInterval converts the interval string to time.Duration
func (sc StrategyConfig) ParseInterval() (time.Duration, error) {
	if sc.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(sc.Interval)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if c.Broker.Env != "practice" && c.Broker.Env != "live" {
		return fmt.Errorf("broker.env must be 'practice' or 'live'")
	}
	if len(c.Strategy.Watchlist) == 0 {
		return fmt.Errorf("strategy.watchlist is required")
	}
	for _, name := range c.Strategy.Watchlist {
		if _, ok := market.Instruments[name]; !ok {
			return fmt.Errorf("unknown instrument: %s", name)
		}
	}
	if c.Strategy.CandleCount <= 0 {
		return fmt.Errorf("strategy.candle_count must be positive")
	}
	if c.Strategy.ShortWindow <= 0 || c.Strategy.LongWindow <= 0 {
		return fmt.Errorf("strategy moving-average windows must be positive")
	}
	if c.Strategy.ShortWindow >= c.Strategy.LongWindow {
		return fmt.Errorf("strategy.short_window must be less than long_window")
	}
	if c.Strategy.RSIPeriod <= 0 {
		return fmt.Errorf("strategy.rsi_period must be positive")
	}
	if c.Strategy.Oversold <= 0 || c.Strategy.Overbought >= 100 || c.Strategy.Oversold >= c.Strategy.Overbought {
		return fmt.Errorf("strategy RSI thresholds must satisfy 0 < oversold < overbought < 100")
	}
	if c.Strategy.StopPips <= 0 {
		return fmt.Errorf("strategy.stop_pips must be positive")
	}
	if c.Strategy.RewardRatio <= 0 {
		return fmt.Errorf("strategy.reward_ratio must be positive")
	}
	if _, err := c.Strategy.ParseInterval(); err != nil {
		return fmt.Errorf("strategy.interval: %w", err)
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && c.Journal.TradesFile == "" {
		return fmt.Errorf("journal trades_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: ":10000",
		},
		Broker: BrokerConfig{
			Env: "practice",
		},
		Strategy: StrategyConfig{
			Watchlist:   []string{market.DefaultInstrument},
			Granularity: "M5",
			CandleCount: 100,
			ShortWindow: 10,
			LongWindow:  30,
			RSIPeriod:   14,
			Oversold:    30,
			Overbought:  70,
			StopPips:    25,
			RewardRatio: 2,
			Interval:    "5m",
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
		},
	}
}
