// Package config provides the configuration of the persons template bot:
// defaults, validation, and the optional YAML configuration file holding
// the wiki endpoint and bot credentials.
package config
