// Package config provides configuration management for hadesctl.
//
// Two kinds of configuration are handled here.
//
// # Tool Configuration
//
// Tool settings are YAML files loaded and merged in the following order, later
// sources overriding earlier ones:
//
//  1. Default configuration (compiled in, see GetDefaultConfig)
//  2. User configuration (~/.config/hadesctl/config.yaml)
//  3. Project configuration (./.hadesctl/config.yaml)
//
// Passing an explicit path to LoadConfigFromPath skips the layering and merges
// that single file over the defaults.
//
//	compose:
//	  file: docker-compose.yml
//	  service: db
//	health:
//	  attempts: 15
//	  interval: 2s
//	  settleDelay: 2s
//	runtime:
//	  command: python3.12
//	  version: "3.12"
//	rebuild:
//	  confirmToken: REBUILD
//
// # Connection Credentials
//
// Database connection parameters come from an optional KEY=VALUE file (by
// default .env) holding POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER,
// POSTGRES_PASSWORD and POSTGRES_DB. Variables already exported in the process
// environment take precedence over the file, and every field except the
// password has a default. LoadConnection never writes to the process
// environment; the resulting ConnectionConfig is passed explicitly to whoever
// needs it.
package config
