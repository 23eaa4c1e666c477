// Package config loads env-tagged configuration structs.
//
// Load parses environment variables into a struct using caarlos0/env,
// after loading a .env file once per process if one exists:
//
//	var cfg fixedwindow.Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// Each struct type is parsed once and cached, so the limiter, Postgres and
// Redis configs can all be loaded independently from wherever they are
// needed without re-reading the environment.
package config
