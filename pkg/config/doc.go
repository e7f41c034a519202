// Package config loads typed configuration structs from the environment.
//
// Load parses env-tagged struct fields via caarlos0/env, loading a .env file
// once per process through godotenv. Each configuration type is parsed once
// and cached, so independent components can load the same config without
// re-reading the environment.
package config
