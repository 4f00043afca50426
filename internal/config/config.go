// Package config loads and validates the generator configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"git.weirdcat.su/weirdcat/vogen/internal/walker"
)

// Strategy selects the renderer
type Strategy string

const (
	StrategyTemplate Strategy = "template"
	StrategyJennifer Strategy = "jennifer"
)

const (
	DefaultSourceRoot    = "."
	DefaultTestOption    = "testOptionDefault"
	DefaultConverterFile = "vo.go"
	DefaultLogLevel      = "info"
)

// DefaultFiles are looked up in order when no config path is given
var DefaultFiles = []string{"vogen.yaml", "vogen.yml", "vogen.json"}

// Config represents the generator configuration
type Config struct {
	SourceRoot     string   `yaml:"sourceRoot" json:"sourceRoot" validate:"required"`
	OutputRoot     string   `yaml:"outputRoot" json:"outputRoot" validate:"required"`
	Packages       []string `yaml:"packages" json:"packages" validate:"required,min=1,dive,package"`
	DefaultPackage string   `yaml:"defaultPackage" json:"defaultPackage" validate:"required,package"`
	// TestOption is carried through and only logged
	TestOption string `yaml:"testOption" json:"testOption"`

	Classes       []string `yaml:"classes" json:"classes" validate:"dive,required"`
	Exclude       []string `yaml:"exclude" json:"exclude"`
	Strategy      Strategy `yaml:"strategy" json:"strategy" validate:"oneof=template jennifer"`
	TemplateDir   string   `yaml:"templateDir" json:"templateDir"`
	ConverterFile string   `yaml:"converterFile" json:"converterFile" validate:"required,endswith=.go,excludes=/"`

	SourceImportPrefix string `yaml:"sourceImportPrefix" json:"sourceImportPrefix"`
	OutputImportPrefix string `yaml:"outputImportPrefix" json:"outputImportPrefix"`

	LogLevel string `yaml:"logLevel" json:"logLevel" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns a Config holding every default value
func Default() *Config {
	return &Config{
		SourceRoot:    DefaultSourceRoot,
		TestOption:    DefaultTestOption,
		Exclude:       append([]string(nil), walker.DefaultExclude...),
		Strategy:      StrategyTemplate,
		ConverterFile: DefaultConverterFile,
		LogLevel:      DefaultLogLevel,
	}
}

// Load reads a YAML or JSON file, chosen by extension, on top of Default()
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return nil, errors.New("unable to parse config as YAML or JSON")
			}
		}
	}

	cfg := Default()
	if err := cfg.Merge(&loaded); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Find returns the first of DefaultFiles present in dir, or "" when none is
func Find(fs afero.Fs, dir string) string {
	for _, name := range DefaultFiles {
		candidate := filepath.Join(dir, name)
		if ok, _ := afero.Exists(fs, candidate); ok {
			return candidate
		}
	}
	return ""
}

// Merge overlays the non-zero values of other onto c
func (c *Config) Merge(other *Config) error {
	if other == nil {
		return nil
	}
	if err := mergo.Merge(c, other, mergo.WithOverride); err != nil {
		return fmt.Errorf("merging config: %w", err)
	}
	return nil
}

var packagePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// dotted package names, one identifier per directory
	if err := v.RegisterValidation("package", func(fl validator.FieldLevel) bool {
		return packagePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks required keys and rejects output roots that would delete
// the sources on cleanup
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := walker.ValidatePatterns(c.Exclude); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return checkRoots(c.SourceRoot, c.OutputRoot)
}

func checkRoots(sourceRoot, outputRoot string) error {
	src, err := filepath.Abs(sourceRoot)
	if err != nil {
		return fmt.Errorf("resolving sourceRoot: %w", err)
	}
	out, err := filepath.Abs(outputRoot)
	if err != nil {
		return fmt.Errorf("resolving outputRoot: %w", err)
	}

	rel, err := filepath.Rel(out, src)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("invalid config: outputRoot %s contains sourceRoot %s", outputRoot, sourceRoot)
	}
	return nil
}
