package morph

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/viant/morph/tags"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config represents declarative converter options
type Config struct {
	Visibility     string   `yaml:"visibility,omitempty" validate:"omitempty,oneof=all typed decorated"`
	Excludes       []string `yaml:"excludes,omitempty" validate:"dive,required"`
	SuppressErrors *bool    `yaml:"suppressErrors,omitempty"`
	DateLayout     string   `yaml:"dateLayout,omitempty"`
	MaxDepth       int      `yaml:"maxDepth,omitempty" validate:"gte=0"`
}

// Validate checks config values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options returns options for keys present in the config
func (c *Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var ret []Option
	if c.Visibility != "" {
		ret = append(ret, WithVisibility(Visibility(c.Visibility)))
	}
	if c.Excludes != nil {
		excludes, err := ParseExclusions(c.Excludes...)
		if err != nil {
			return nil, err
		}
		ret = append(ret, WithExcludes(excludes...))
	}
	if c.SuppressErrors != nil {
		ret = append(ret, WithSuppressErrors(*c.SuppressErrors))
	}
	if c.DateLayout != "" {
		ret = append(ret, WithDateLayout(c.DateLayout))
	}
	if c.MaxDepth > 0 {
		ret = append(ret, WithMaxDepth(c.MaxDepth))
	}
	return ret, nil
}

// LoadConfig parses YAML config into options
func LoadConfig(data []byte) ([]Option, error) {
	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config.Options()
}

// NewFromConfig creates a converter with YAML config defaults
func NewFromConfig(data []byte, options ...Option) (*Converter, error) {
	configured, err := LoadConfig(data)
	if err != nil {
		return nil, err
	}
	return New(append(configured, options...)...), nil
}

// tagOptions returns options declared by a type level tag
func tagOptions(tag *tags.Tag) ([]Option, error) {
	config := &Config{
		Visibility:     tag.Visibility,
		Excludes:       tag.Excludes,
		SuppressErrors: tag.SuppressErrors,
		DateLayout:     tag.DateLayout,
		MaxDepth:       tag.MaxDepth,
	}
	return config.Options()
}
