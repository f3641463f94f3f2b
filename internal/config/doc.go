// Package config loads and merges devkit configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (DEVKIT_PROVIDER, DEVKIT_MODEL, ... then
//     AI_MODEL, AI_BASE_URL and OPENAI_API_KEY)
//  3. Config file ($XDG_CONFIG_HOME/devkit/config.yaml)
//  4. Built-in defaults
//
// A .env file in the working directory is loaded into the environment by
// [LoadDotEnv] before any of this happens, so it behaves like step 2.
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single dotted key.
package config
