package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/walk"
)

const (
	DefaultDelta      = 30
	DefaultFPS        = 60
	DefaultBackground = "#ffffff"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "mem://discwalk/config.schema.json"

type Config struct {
	Seed       int64       `yaml:"seed"`
	Region     walk.Region `yaml:"region"`
	Disc       DiscConfig  `yaml:"disc"`
	Walk       WalkConfig  `yaml:"walk"`
	Frames     int         `yaml:"frames"`
	FPS        int         `yaml:"fps"`
	Background string      `yaml:"background"`
	Script     string      `yaml:"script,omitempty"`
}

type DiscConfig struct {
	Radius float64 `yaml:"radius"`
}

type WalkConfig struct {
	Step  float64 `yaml:"step"`
	Delta uint8   `yaml:"delta"`
}

func DefaultConfig() *Config {
	return &Config{
		Region:     walk.DefaultRegion,
		Disc:       DiscConfig{Radius: walk.DefaultRadius},
		Walk:       WalkConfig{Step: walk.DefaultStep, Delta: DefaultDelta},
		Frames:     walk.DefaultFrames,
		FPS:        DefaultFPS,
		Background: DefaultBackground,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates a YAML document against the config schema and decodes it
// over the defaults.
func Parse(data []byte) (*Config, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	if tree != nil {
		if err := validateTree(tree); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add config schema: %v", err)
	}
	return compiler.Compile(schemaURL)
}

// validateTree re-encodes the YAML tree as JSON so the validator sees
// json.Number values rather than Go ints.
func validateTree(tree any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return schema.Validate(doc)
}

func (c *Config) Validate() error {
	if err := c.Region.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Disc.Radius <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, walk.ErrInvalidRadius)
	}
	if c.Walk.Step <= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, walk.ErrInvalidStep)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative", ErrInvalidConfig)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive", ErrInvalidConfig)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) Params() driver.Params {
	return driver.Params{Step: c.Walk.Step, Delta: c.Walk.Delta}
}

func (c *Config) BackgroundColor() (color.Color, error) {
	if c.Background == "" {
		return color.White, nil
	}
	col, err := colorful.Hex(c.Background)
	if err != nil {
		return nil, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
