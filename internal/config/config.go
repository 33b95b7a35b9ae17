package config

import (
	"errors"
	"os"
	"time"

	"github.com/imdario/mergo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// WifiConfig represents the configuration of the wifi printer session
type WifiConfig struct {
	Port            int           `yaml:"port"`
	Discovery       string        `yaml:"discovery"`
	BroadcastPort   int           `yaml:"broadcastPort"`
	Targets         []string      `yaml:"targets"`
	DialTimeout     time.Duration `yaml:"dialTimeout"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WaitForMoreData time.Duration `yaml:"waitForMoreData"`
}

// BluetoothConfig represents the configuration of the bluetooth printer
// session. RSSIMode is "either" or "between".
type BluetoothConfig struct {
	RSSIFloor      int           `yaml:"rssiFloor"`
	RSSICeiling    int           `yaml:"rssiCeiling"`
	RSSIMode       string        `yaml:"rssiMode"`
	ConnectTimeout time.Duration `yaml:"connectTimeout"`
	SendTimeout    time.Duration `yaml:"sendTimeout"`
}

// ServerConfig represents the configuration of the websocket bridge
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// Config represents the data structure of our user provided yaml configuration
type Config struct {
	Wifi      WifiConfig      `yaml:"wifi"`
	Bluetooth BluetoothConfig `yaml:"bluetooth"`
	Server    ServerConfig    `yaml:"server"`
}

// New returns umarshaled data structure of user provided config. Missing
// or zero values are filled from Default.
func New(confPath string) (*Config, error) {
	var config Config

	raw, err := os.ReadFile(confPath)

	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, err
	}

	if err := mergo.Merge(&config, Default()); err != nil {
		return nil, err
	}

	return &config, nil
}

// Load returns the config at confPath or the default config when no file
// exists there yet
func Load(confPath string) (*Config, error) {
	conf, err := New(confPath)

	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return conf, err
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Wifi: WifiConfig{
			Port:            6101,
			Discovery:       "broadcast",
			BroadcastPort:   4201,
			Targets:         []string{},
			DialTimeout:     5 * time.Second,
			ReadTimeout:     5 * time.Second,
			WaitForMoreData: 500 * time.Millisecond,
		},
		Bluetooth: BluetoothConfig{
			RSSIFloor:      -70,
			RSSICeiling:    -15,
			RSSIMode:       "either",
			ConnectTimeout: 15 * time.Second,
			SendTimeout:    10 * time.Second,
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:7401",
		},
	}
}

// Write writes conf to the "config-file" path registered with viper
func Write(conf Config) error {
	configFile, ok := viper.Get("config-file").(string)

	if !ok {
		return errors.New("failed to find config file path")
	}

	file, err := os.Create(configFile)

	if err != nil {
		return err
	}

	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	return encoder.Encode(conf)
}
