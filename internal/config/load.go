package config

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/mrz1836/flock/internal/constants"
	"github.com/mrz1836/flock/internal/errors"
)

// NewViper creates a viper instance with flock's defaults and the SHELL
// binding. Flags are bound on top of it by the CLI.
//
// SHELL is the only environment variable consulted; an empty SHELL counts as
// unset and falls back to /bin/sh.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	// BindEnv only errors without a key name.
	_ = v.BindEnv("command.shell", constants.ShellEnvVar)
	return v
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Mark(err, errors.ErrUsage)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
// Lock modes and timeouts decode through their UnmarshalText; the retry
// interval accepts Go duration strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
