package trace

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Keys of the option strings accepted by ParseOptions.
const (
	OptionRootPackage             = "rootPackage"
	OptionGroupPackage            = "groupPackage"
	OptionIgnorePackage           = "ignorePackage"
	OptionIgnoreCausePackage      = "ignoreCausePackage"
	OptionIgnoreCauses            = "ignoreCauses"
	OptionIgnoreModuleName        = "ignoreModuleName"
	OptionMaxDepth                = "maxDepth"
	OptionPrintPackageInformation = "printPackageInformation"
	OptionPrintSuppressed         = "printSuppressed"
)

// ParseOptions applies "key=value" option strings, as written in logging
// configurations, to config. Package options append to the package lists.
// Invalid options are reported as warnings to logger and skipped, so logging
// setup can never fail because of them. A nil logger discards the warnings.
func ParseOptions(config *Config, logger *zerolog.Logger, options ...string) {
	if logger == nil {
		disabled := zerolog.Nop()
		logger = &disabled
	}
	for _, option := range options {
		key, value, found := strings.Cut(option, "=")
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if !found || key == "" || strings.Contains(value, "=") {
			logger.Warn().Str("option", option).Msg("Invalid trace option")
			continue
		}
		if err := parseOption(config, key, value); err != nil {
			logger.Warn().Err(err).Str("option", option).Msg("Failed to set trace option")
		}
	}
}

func parseOption(config *Config, key string, value string) error {
	switch key {
	case OptionRootPackage:
		config.RootPackages = append(config.RootPackages, value)
	case OptionGroupPackage:
		config.GroupPackages = append(config.GroupPackages, value)
	case OptionIgnorePackage:
		config.IgnorePackages = append(config.IgnorePackages, value)
	case OptionIgnoreCausePackage:
		config.IgnoreCausePackages = append(config.IgnoreCausePackages, value)
	case OptionIgnoreCauses:
		return parseBool(value, &config.IgnoreAllCauses, false)
	case OptionIgnoreModuleName:
		return parseBool(value, &config.PrintModuleName, true)
	case OptionPrintPackageInformation:
		return parseBool(value, &config.PrintPackageInformation, false)
	case OptionPrintSuppressed:
		return parseBool(value, &config.PrintSuppressed, false)
	case OptionMaxDepth:
		maxDepth, err := strconv.Atoi(value)
		if err != nil {
			return ErrInvalidOption.AddCause(err)
		}
		if maxDepth < 0 {
			return ErrInvalidOption.SetMessage("negative max depth %d", maxDepth)
		}
		config.MaxDepth = maxDepth
	default:
		return ErrUnsupportedOption.SetMessage("unsupported key %q", key)
	}
	return nil
}

func parseBool(value string, target *bool, negate bool) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return ErrInvalidOption.AddCause(err)
	}
	*target = parsed != negate
	return nil
}
