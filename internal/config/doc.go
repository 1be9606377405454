// ABOUTME: Package documentation for configuration loading
// ABOUTME: Describes the YAML format, env expansion, and defaults

// Package config loads the shelfwise-identity configuration from a YAML
// file. Values in the form ${VAR_NAME} are expanded from the
// environment before parsing, so secrets can live outside the file:
//
//	auth:
//	  secret_key: ${SHELFWISE_SECRET_KEY}
//	  admin_registration_code: ${SHELFWISE_ADMIN_CODE}
//	  token_ttl: 90m
//
// Duration fields are written as Go duration strings (90m, 24h) and
// parsed after unmarshaling. Load applies defaults for optional fields
// and validates that required ones are present.
package config
