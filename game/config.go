package game

import (
	"fmt"
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type TableConfig struct {
	Port            int `yaml:"port"`
	RestPort        int `yaml:"restPort"`
	DealingSeat     int `yaml:"dealingSeat"`
	SendQueueSize   int `yaml:"sendQueueSize"`
	MaxMessageBytes int `yaml:"maxMessageBytes"`
	EventQueueSize  int `yaml:"eventQueueSize"`
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		Port:            5555,
		RestPort:        8080,
		DealingSeat:     Seat1,
		SendQueueSize:   64,
		MaxMessageBytes: 64 * 1024,
		EventQueueSize:  256,
	}
}

// ParseTableConfig reads the YAML table config. An empty file name returns
// the defaults. Fields left out of the file keep their default values.
func ParseTableConfig(configFile string) (TableConfig, error) {
	config := DefaultTableConfig()
	if configFile == "" {
		return config, nil
	}

	bytes, err := ioutil.ReadFile(configFile)
	if err != nil {
		return TableConfig{}, errors.Wrap(err, fmt.Sprintf("Error reading table config file [%s]", configFile))
	}

	err = yaml.Unmarshal(bytes, &config)
	if err != nil {
		return TableConfig{}, errors.Wrap(err, fmt.Sprintf("Error parsing table config YAML file [%s]", configFile))
	}

	if err := config.validate(); err != nil {
		return TableConfig{}, errors.Wrap(err, fmt.Sprintf("Invalid table config file [%s]", configFile))
	}
	return config, nil
}

func (c TableConfig) validate() error {
	if c.DealingSeat != Seat1 && c.DealingSeat != Seat2 {
		return fmt.Errorf("dealingSeat must be %d or %d, got %d", Seat1, Seat2, c.DealingSeat)
	}
	if c.Port < 0 || c.RestPort < 0 {
		return fmt.Errorf("ports must not be negative")
	}
	if c.SendQueueSize <= 0 || c.MaxMessageBytes <= 0 || c.EventQueueSize <= 0 {
		return fmt.Errorf("queue sizes and maxMessageBytes must be positive")
	}
	return nil
}
