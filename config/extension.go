package config

import "github.com/spf13/viper"

// Extension extension config struct
type Extension struct {
	// MountTimeout bounds one entry point activation, e.g. "30s"
	MountTimeout string
	// CleanupTimeout bounds one teardown disposer, e.g. "30s"
	CleanupTimeout string
	// HostSource labels events originating from the host on instance buses
	HostSource string
}

// getExtensionConfig returns the extension config
func getExtensionConfig(v *viper.Viper) *Extension {
	return &Extension{
		MountTimeout:   getStringOrDefault(v, "extension.mount_timeout", "30s"),
		CleanupTimeout: getStringOrDefault(v, "extension.cleanup_timeout", "30s"),
		HostSource:     getStringOrDefault(v, "extension.host_source", "host"),
	}
}
