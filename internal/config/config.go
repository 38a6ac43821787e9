package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Keywords []string `yaml:"keywords"`
	Search   Search   `yaml:"search"`
	Weather  Weather  `yaml:"weather"`
	Network  Network  `yaml:"network"`
	Output   Output   `yaml:"output"`
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
}

type Search struct {
	News  Section     `yaml:"news"`
	Blogs BlogSection `yaml:"blogs"`
}

// Section holds per-section pipeline settings.
type Section struct {
	MaxResults int    `yaml:"max_results"`
	HoursBack  int    `yaml:"hours_back"`
	AdFilter   string `yaml:"ad_filter"`
}

type BlogSection struct {
	Section `yaml:",inline"`
	Sites   []string `yaml:"sites"`
}

type Weather struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type Network struct {
	Enabled bool `yaml:"enabled"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for kdigest.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "kdigest")
}

// DataDir returns the XDG data directory for kdigest.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "kdigest")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/kdigest/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'kdigest init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Keywords: []string{"인공지능"},
		Search: Search{
			News: Section{
				MaxResults: 5,
				HoursBack:  24,
				AdFilter:   "broad",
			},
			Blogs: BlogSection{
				Section: Section{
					MaxResults: 5,
					HoursBack:  24,
					AdFilter:   "broad",
				},
				Sites: []string{"tistory.com", "blog.naver.com", "brunch.co.kr"},
			},
		},
		Weather: Weather{Enabled: true, Address: "서울특별시"},
		Network: Network{Enabled: true},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
