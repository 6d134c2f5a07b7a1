package core

import (
	"fmt"
	"strings"
)

type ExportConfig struct {
	CF247FileName  string `koanf:"cf247_file_name" mapstructure:"cf247_file_name"`
	AACarsFileName string `koanf:"aacars_file_name" mapstructure:"aacars_file_name"`
}

type Config struct {
	ServiceName string       `koanf:"service_name" mapstructure:"service_name"`
	Export      ExportConfig `koanf:"export" mapstructure:"export"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "dealers",
		Export: ExportConfig{
			CF247FileName:  "cf247_feed.csv",
			AACarsFileName: "aacars_feed.csv",
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	return nil
}
