package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thanhminhmr/go-smarttrace/exception"
)

const (
	ErrReadConfig  = exception.String("failed to read configuration file")
	ErrMapSettings = exception.String("failed to map settings to command flags")
)

const environmentPrefix = "smarttrace"

// bindEnvironment sets every flag not given on the command line from the
// SMARTTRACE_ environment variables, then from the configuration file.
func bindEnvironment(command *cobra.Command, configFile string) error {
	v := viper.New()
	v.SetEnvPrefix(environmentPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return ErrReadConfig.AddCause(err)
		}
	}
	var errs []error
	command.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || f.Name == flagConfig || !v.IsSet(f.Name) {
			return
		}
		values := []string{fmt.Sprintf("%v", v.Get(f.Name))}
		if _, ok := f.Value.(pflag.SliceValue); ok {
			values = v.GetStringSlice(f.Name)
		}
		for _, value := range values {
			if err := command.Flags().Set(f.Name, value); err != nil {
				errs = append(errs, err)
			}
		}
	})
	if len(errs) > 0 {
		return ErrMapSettings.AddCause(errs...)
	}
	return nil
}
