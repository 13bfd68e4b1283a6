// Package config loads the relay configuration file. Every field is
// optional; zero values fall back to defaults here or at the point of use.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the file-configurable settings for the relay binary.
type Config struct {
	// OutputDir is where the transmission log and JSON artifacts land.
	OutputDir string `yaml:"output_dir,omitempty"`

	// Endpoint overrides the simulated intake endpoint.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Passphrase, when set, derives the envelope key via PBKDF2 instead
	// of generating a random one per run.
	Passphrase string `yaml:"passphrase,omitempty"`

	// SovereignDemo adds a TRIBAL_SOVEREIGN record to the run to
	// demonstrate the gate refusing it.
	SovereignDemo bool `yaml:"sovereign_demo,omitempty"`

	// ListenAddr is the HTTP stub listen address.
	ListenAddr string `yaml:"listen_addr,omitempty"`

	// RatesURL overrides the upstream rates API proxied by the stub.
	RatesURL string `yaml:"rates_url,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		OutputDir:  "./logs",
		ListenAddr: ":5000",
	}
}

// Load reads a YAML config file and fills unset fields from Default.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config read failed: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("config parse failed: %w", err)
	}
	if file.OutputDir != "" {
		cfg.OutputDir = file.OutputDir
	}
	if file.ListenAddr != "" {
		cfg.ListenAddr = file.ListenAddr
	}
	cfg.Endpoint = file.Endpoint
	cfg.Passphrase = file.Passphrase
	cfg.SovereignDemo = file.SovereignDemo
	cfg.RatesURL = file.RatesURL
	return cfg, nil
}
