// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env files, and caches each configuration
// type after its first successful parse.
//
//	var cfg binder.Config
//	config.MustLoad(&cfg)
//
// Tests that change the environment call ResetCache before Load.
package config
