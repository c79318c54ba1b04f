// Package config loads service configuration from a YAML file, the process
// environment and an optional .env file.
//
// Precedence, lowest to highest: config.yml, .env values, real environment
// variables. Environment variables are mapped onto nested keys
// (ASR_TIMEOUT -> asr.timeout) and explicit aliases can be declared for
// variables whose names do not follow the key layout:
//
//	var cfg AppConfig
//	err := config.LoadConfig("asrdrop", &cfg,
//	    config.WithEnvAlias("ASR_API_URL", "asr.url"))
package config
