package trace

import (
	"strings"

	"github.com/thanhminhmr/go-smarttrace/configuration"
	"github.com/thanhminhmr/go-smarttrace/exception"
	"github.com/thanhminhmr/go-smarttrace/format"
	"github.com/thanhminhmr/go-smarttrace/internal"
	"github.com/thanhminhmr/go-smarttrace/render"
)

const (
	FormatterGo      = "go"
	FormatterModular = "modular"
)

const (
	ErrInvalidConfig     = exception.String("invalid trace configuration")
	ErrInvalidOption     = exception.String("invalid trace option value")
	ErrUnsupportedOption = exception.String("unsupported trace option")
)

func init() {
	configuration.SetDefault("SMART_TRACE_IGNORE_ALL_CAUSES", "false")
	configuration.SetDefault("SMART_TRACE_MAX_DEPTH", "0")
	configuration.SetDefault("SMART_TRACE_PRINT_PACKAGE_INFORMATION", "false")
	configuration.SetDefault("SMART_TRACE_PRINT_MODULE_NAME", "true")
	configuration.SetDefault("SMART_TRACE_PRINT_SUPPRESSED", "true")
	configuration.SetDefault("SMART_TRACE_FORMATTER", FormatterGo)
}

// Config is the environment configuration of a Registry. Package lists are
// separated by semicolons.
type Config struct {
	RootPackages            []string `env:"SMART_TRACE_ROOT_PACKAGES"`
	GroupPackages           []string `env:"SMART_TRACE_GROUP_PACKAGES"`
	IgnorePackages          []string `env:"SMART_TRACE_IGNORE_PACKAGES"`
	IgnoreCausePackages     []string `env:"SMART_TRACE_IGNORE_CAUSE_PACKAGES"`
	IgnoreAllCauses         bool     `env:"SMART_TRACE_IGNORE_ALL_CAUSES"`
	MaxDepth                int      `env:"SMART_TRACE_MAX_DEPTH" validate:"min=0"`
	PrintPackageInformation bool     `env:"SMART_TRACE_PRINT_PACKAGE_INFORMATION"`
	PrintModuleName         bool     `env:"SMART_TRACE_PRINT_MODULE_NAME"`
	PrintSuppressed         bool     `env:"SMART_TRACE_PRINT_SUPPRESSED"`
	Formatter               string   `env:"SMART_TRACE_FORMATTER" validate:"omitempty,oneof=go modular"`
}

// DefaultConfig returns the configuration matching NewRegistry.
func DefaultConfig() *Config {
	options := render.DefaultOptions()
	return &Config{
		IgnoreAllCauses:         options.IgnoreAllCauses,
		MaxDepth:                options.MaxDepth,
		PrintPackageInformation: options.PrintPackageInformation,
		PrintModuleName:         options.PrintModuleName,
		PrintSuppressed:         options.PrintSuppressed,
		Formatter:               FormatterGo,
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := configuration.Load(config); err != nil {
		return nil, ErrInvalidConfig.AddCause(err)
	}
	return config, nil
}

// Options returns the rendering options of the configuration.
func (c *Config) Options() render.Options {
	options := render.DefaultOptions()
	options.IgnoreAllCauses = c.IgnoreAllCauses
	options.MaxDepth = c.MaxDepth
	options.PrintPackageInformation = c.PrintPackageInformation
	options.PrintModuleName = c.PrintModuleName
	options.PrintSuppressed = c.PrintSuppressed
	return options
}

// New creates a registry from config.
func New(config *Config) (*Registry, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := internal.Validator.Struct(config); err != nil {
		return nil, ErrInvalidConfig.AddCause(err)
	}
	registry := NewRegistry()
	for _, name := range config.RootPackages {
		registry.RegisterRootPackage(name)
	}
	for _, name := range config.GroupPackages {
		registry.RegisterGroupPackage(name)
	}
	for _, name := range config.IgnorePackages {
		registry.RegisterIgnorePackage(name, false)
	}
	for _, name := range config.IgnoreCausePackages {
		registry.RegisterIgnorePackage(name, true)
	}
	registry.SetOptions(config.Options())
	registry.SetFormatter(NewFormatter(config.Formatter))
	return registry, nil
}

// NewFormatter returns the formatter named by name, the Go formatter for
// unknown names.
func NewFormatter(name string) render.Formatter {
	if strings.EqualFold(strings.TrimSpace(name), FormatterModular) {
		return format.Modular{}
	}
	return format.Go{}
}
