// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// API credentials may be overridden from the environment; a placeholder
// credential disables the corresponding feed client rather than failing.
package config
