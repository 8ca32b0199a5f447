package gconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"clickchess/ui/gui/gbase"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "clickchess.json"

// looked up in this order when no path is given
var searchFiles = []string{DefaultFile, "clickchess.yaml", "clickchess.yml"}

type Config struct {
	Theme      string `json:"theme" yaml:"theme"`             // light/dark
	Size       int    `json:"size" yaml:"size"`               // window side in pixels
	Flipped    bool   `json:"flipped" yaml:"flipped"`         // start with black at the bottom
	ShowCoords bool   `json:"show_coords" yaml:"show_coords"` // file and rank labels
	LogLevel   string `json:"log_level" yaml:"log_level"`     // debug/info/warn/error
	Debug      bool   `json:"debug" yaml:"debug"`             // true/false

	path string
}

func defaultConfig() Config {
	return Config{
		Theme:      "light",
		Size:       gbase.WindowSize,
		Flipped:    false,
		ShowCoords: true,
		LogLevel:   "info",
		Debug:      false,
		path:       DefaultFile,
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// NewGUIConfig reads path, or the first clickchess.{json,yaml,yml} found in
// the working directory. A missing file gives the defaults.
func NewGUIConfig(path string) (*Config, error) {
	candidates := searchFiles
	if path != "" {
		candidates = []string{path}
	}

	for _, file := range candidates {
		_, err := os.Stat(file)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, err
		}
		return loadFile(file)
	}

	def := defaultConfig()
	if path != "" {
		def.path = path
	}
	return &def, nil
}

func loadFile(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	c := defaultConfig()
	if isYAML(file) {
		err = yaml.Unmarshal(data, &c)
	} else {
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("error decode config %s: %w", file, err)
	}
	c.path = file
	correctableConfig(&c)

	return &c, nil
}

func (c *Config) Path() string {
	return c.path
}

func (c *Config) Save() error {
	file := c.path
	if file == "" {
		file = DefaultFile
	}

	var data []byte
	var err error
	if isYAML(file) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "    ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(file, data, 0644)
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme != "light" && c.Theme != "dark" {
		c.Theme = def.Theme
	}
	if c.Size < gbase.MinViewport {
		c.Size = def.Size
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = def.LogLevel
	}
}
