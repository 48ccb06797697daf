// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Configer is the subset of Viper behavior dealing with configuration paths and locations
type Configer interface {
	AddConfigPath(string)
	SetConfigName(string)
	SetConfigFile(string)
}

// AddStandardConfigPaths adds the standard *nix-style configuration paths
func AddStandardConfigPaths(c Configer, applicationName string) {
	c.AddConfigPath(fmt.Sprintf("/etc/%s", applicationName))
	c.AddConfigPath(fmt.Sprintf("$HOME/%s", applicationName))
	c.AddConfigPath(".")
}

// FlagLookup is the behavior expected of a pflag.FlagSet to lookup individual flags by longhand name.
type FlagLookup interface {
	Lookup(string) *pflag.Flag
}

// flagValue returns the nonempty value of a flag, if there is one
func flagValue(fl FlagLookup, flag string) (string, bool) {
	if f := fl.Lookup(flag); f != nil {
		if value := f.Value.String(); len(value) > 0 {
			return value, true
		}
	}

	return "", false
}

// BindConfig points the Configer at the file named by fileFlag, if set.  Failing that, it sets the
// configuration name searched for from nameFlag, if set.  This function returns true if either flag
// was used, which means the caller asked for a configuration file explicitly.
func BindConfig(c Configer, fl FlagLookup, fileFlag, nameFlag string) bool {
	if file, ok := flagValue(fl, fileFlag); ok {
		c.SetConfigFile(file)
		return true
	}

	if name, ok := flagValue(fl, nameFlag); ok {
		c.SetConfigName(name)
		return true
	}

	return false
}
