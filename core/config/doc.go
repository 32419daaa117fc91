// Package config provides configuration management for the catalog manager.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults are declared as struct tags on the section
// configs and bound by reflection, so adding a setting is a one-line change
// in the owning package.
//
// Sections:
//   - Server: HTTP port and API key
//   - Database: local persistence (sqlite or mysql)
//   - Storage: S3/MinIO snapshot archive
//   - Log: level and encoding
//   - Sync: remote endpoint, debounce/interval/cooldown windows
//   - Library: loan period and import defaults
package config
