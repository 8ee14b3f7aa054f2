package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Book struct {
		Instrument     string `yaml:"instrument"`
		Type           string `yaml:"type"` // L1_MBP, L2_MBP or L3_MBO
		PricePrecision uint8  `yaml:"price_precision"`
		SizePrecision  uint8  `yaml:"size_precision"`
	} `yaml:"book"`
	Feed struct {
		Path string `yaml:"path"`
	} `yaml:"feed"`
	Display struct {
		Levels int `yaml:"levels"`
	} `yaml:"display"`
}

func defaultConfig() Config {
	var c Config
	c.Logging.Level = "info"
	c.Logging.Pretty = false
	c.Book.Instrument = "AAPL.XNAS"
	c.Book.Type = "L2_MBP"
	c.Book.PricePrecision = 2
	c.Book.SizePrecision = 0
	c.Feed.Path = ""
	c.Display.Levels = 10
	return c
}

// Load builds the configuration from defaults, an optional YAML file named
// by LOB_CONFIG, and per-key env overrides, in that order.
func Load() Config {
	c := defaultConfig()
	if path := os.Getenv("LOB_CONFIG"); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	if v := os.Getenv("LOB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOB_LOG_PRETTY"); v == "1" || v == "true" {
		c.Logging.Pretty = true
	}
	if v := os.Getenv("LOB_INSTRUMENT"); v != "" {
		c.Book.Instrument = v
	}
	if v := os.Getenv("LOB_BOOK_TYPE"); v != "" {
		c.Book.Type = v
	}
	if v := os.Getenv("LOB_PRICE_PRECISION"); v != "" {
		var n uint8
		if _, err := fmt.Sscan(v, &n); err == nil {
			c.Book.PricePrecision = n
		}
	}
	if v := os.Getenv("LOB_SIZE_PRECISION"); v != "" {
		var n uint8
		if _, err := fmt.Sscan(v, &n); err == nil {
			c.Book.SizePrecision = n
		}
	}
	if v := os.Getenv("LOB_FEED"); v != "" {
		c.Feed.Path = v
	}
	if v := os.Getenv("LOB_DISPLAY_LEVELS"); v != "" {
		var n int
		if _, err := fmt.Sscan(v, &n); err == nil && n > 0 {
			c.Display.Levels = n
		}
	}
	return c
}
