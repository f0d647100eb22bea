package configuration

import (
	"os"
	"strings"
	"sync"

	"github.com/thanhminhmr/go-smarttrace/internal"

	"github.com/go-viper/mapstructure/v2"
)

var (
	globalMutex    sync.RWMutex
	globalDefaults = make(map[string]string)
	globalDotEnv   = make(map[string]string)
)

func init() {
	// .env file have higher priority than defaults
	bytes, err := os.ReadFile(".env")
	if err == nil {
		saveEnvironments(globalDotEnv, strings.Split(string(bytes), "\n"))
	}
}

func saveEnvironments(target map[string]string, lines []string) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		split := strings.SplitN(line, "=", 2)
		if len(split) == 2 {
			target[strings.TrimSpace(split[0])] = strings.TrimSpace(split[1])
		}
	}
}

// SetDefault registers the value used when neither the environment nor the
// .env file defines the key.
func SetDefault(key string, value string) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalDefaults[key] = value
}

// Load decodes the environment into config using its `env` struct tags, then
// validates it. Slice fields are split by semicolons.
func Load[T any](config *T, prefixes ...string) error {
	prefix := ""
	if len(prefixes) > 0 {
		prefix = strings.Join(prefixes, "_") + "_"
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "env",
		DecodeHook:       internal.SplitSemicolonsDecodeHookFunc,
		ZeroFields:       true,
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(getEnvironment(prefix)); err != nil {
		return err
	}
	return internal.Validator.Struct(config)
}

// Loader returns a constructor suitable for fx.Provide.
func Loader[T any](config *T, prefixes ...string) func() (*T, error) {
	return func() (*T, error) {
		err := Load(config, prefixes...)
		return config, err
	}
}

func getEnvironment(prefix string) map[string]string {
	// os.Environ() have the highest priority, read on every load
	environ := make(map[string]string)
	saveEnvironments(environ, os.Environ())

	globalMutex.RLock()
	defer globalMutex.RUnlock()
	environments := make(map[string]string)
	for _, source := range []map[string]string{globalDefaults, globalDotEnv, environ} {
		for key, value := range source {
			if fixedKey, hasPrefix := strings.CutPrefix(key, prefix); hasPrefix {
				environments[fixedKey] = value
			}
		}
	}
	return environments
}
