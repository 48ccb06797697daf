// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// DecodeHook is the decode hook used by UnmarshalKey.  It accepts durations like "1500ms" and
// comma-separated lists wherever slices are expected.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

type keyUnmarshaler interface {
	UnmarshalKey(string, interface{}, ...viper.DecoderConfigOption) error
}

// UnmarshalKey decodes the value at key into target using DecodeHook.  A missing key leaves target unchanged.
func UnmarshalKey(u keyUnmarshaler, key string, target interface{}) error {
	return u.UnmarshalKey(key, target, viper.DecodeHook(DecodeHook()))
}

type defaulter interface {
	SetDefault(string, interface{})
}

// Defaults maps configuration keys onto their default values
type Defaults map[string]interface{}

// ApplyDefaults sets each default value on a Viper
func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}
