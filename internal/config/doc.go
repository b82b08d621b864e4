// Package config loads the settings of the configa server from an INI file
// (read through pkg/configa) and CLI flags with precedence: CLI flags > INI
// settings > Defaults. It exposes strongly typed settings to the rest of the
// application.
package config
