// Package config loads the service configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// environment variables prefixed with COURSEMATCH_. Nested keys use a double
// underscore as separator:
//
//	COURSEMATCH_SERVER__PORT=9000
//	COURSEMATCH_AI__ANALYZER_ENABLED=true
//	COURSEMATCH_ENGINE__RETRIEVAL_TIMEOUT=2s
package config
