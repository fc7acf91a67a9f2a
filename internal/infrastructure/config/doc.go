// Package config loads campuscore's YAML configuration.
//
// Load applies three layers in order — built-in defaults, the config file,
// then CAMPUSCORE_* environment variables — and validates the result, so a
// container deployment can run with nothing but environment overrides
// while a workstation uses configs/config.yaml:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//
// Configuration is read once at startup; nothing re-reads it at runtime.
package config
