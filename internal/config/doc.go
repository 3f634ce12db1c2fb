// Package config loads go-pitchdeck settings from YAML.
//
// A config is named ("default" looks for default.yaml or default.yml in the
// current directory, then in the user config directory under go-pitchdeck/)
// or given as a path. Unknown keys are rejected. Durations use Go syntax:
//
//	server:
//	  addr: ":8080"
//	  sessionTTL: 2h
//	generation:
//	  provider: gemini
//	  timeout: 60s
//	export:
//	  workers: 2
//	logging:
//	  level: info
//	  format: json
package config
