package config

import "github.com/spf13/viper"

// Settings host settings store config struct
type Settings struct {
	// Endpoint is the base URL of the host settings REST API
	Endpoint string
	// Token authenticates SDK requests against the host
	Token string
	// Timeout is the per-request timeout, e.g. "10s"
	Timeout string
}

// getSettingsConfig returns the settings store config
func getSettingsConfig(v *viper.Viper) *Settings {
	return &Settings{
		Endpoint: v.GetString("settings.endpoint"),
		Token:    v.GetString("settings.token"),
		Timeout:  getStringOrDefault(v, "settings.timeout", "10s"),
	}
}
