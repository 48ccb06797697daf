// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultNameFlag = "name"
	DefaultFileFlag = "file"
)

// Option is a configuration step applied to a Viper instance
type Option func(*viper.Viper) error

// SetEnvPrefix makes PREFIX_SECTION_KEY environment variables override the key section.key.
// Dashes in keys are also replaced with underscores.
func SetEnvPrefix(prefix string) Option {
	return func(v *viper.Viper) error {
		v.SetEnvPrefix(prefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
		v.AutomaticEnv()
		return nil
	}
}

// SetDefaults applies each default value
func SetDefaults(d Defaults) Option {
	return func(v *viper.Viper) error {
		ApplyDefaults(v, d)
		return nil
	}
}

// BindPFlags binds every flag in the set to the key of the same name
func BindPFlags(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		return v.BindPFlags(fs)
	}
}

// ReadInConfig reads the configuration file.  A file that cannot be found is only an error if the
// flagset named one with DefaultFileFlag or DefaultNameFlag.
func ReadInConfig(fs *pflag.FlagSet) Option {
	return func(v *viper.Viper) error {
		required := BindConfig(v, fs, DefaultFileFlag, DefaultNameFlag)
		err := v.ReadInConfig()

		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && !required {
			return nil
		} else if err != nil {
			return fmt.Errorf("unable to read configuration: %w", err)
		}

		return nil
	}
}

// StdOptions is the standard configuration sequence for an application: defaults, the standard
// configuration paths and name, environment overrides, flag bindings, and finally the file itself.
func StdOptions(applicationName string, fs *pflag.FlagSet, d Defaults) []Option {
	return []Option{
		SetDefaults(d),
		func(v *viper.Viper) error {
			AddStandardConfigPaths(v, applicationName)
			v.SetConfigName(applicationName)
			return nil
		},
		SetEnvPrefix(strings.ToUpper(applicationName)),
		BindPFlags(fs),
		ReadInConfig(fs),
	}
}

// New creates a Viper and applies each option in order, stopping at the first error.
func New(o ...Option) (*viper.Viper, error) {
	return Configure(viper.New(), o...)
}

// Configure applies each option to an existing Viper, stopping at the first error.
func Configure(v *viper.Viper, o ...Option) (*viper.Viper, error) {
	if v != nil {
		for _, f := range o {
			if err := f(v); err != nil {
				return nil, err
			}
		}
	}

	return v, nil
}
