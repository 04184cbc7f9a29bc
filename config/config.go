// SPDX-License-Identifier: EPL-2.0

// Package config reads the command line tool's settings from the environment,
// after loading any .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ik5/wavedit/fade"
)

type Config struct {
	SampleRate      int
	Channels        int
	SamplesPerPixel int
	FadeShape       fade.Shape

	LogLevel      string
	LogFile       string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int

	// DisabledStates are interaction states turned off on every track.
	DisabledStates []string

	// DotEnv is false when no .env file could be read.
	DotEnv bool
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvShape(key string, fallback fade.Shape) fade.Shape {
	if value, exists := os.LookupEnv(key); exists {
		if shape, err := fade.ParseShape(value); err == nil {
			return shape
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load reads the given .env files (./.env when none are named) without
// overriding variables already set, then resolves every setting.
func Load(files ...string) *Config {
	err := godotenv.Load(files...)

	return &Config{
		SampleRate:      getEnvInt("WAVEDIT_SAMPLE_RATE", 44100),
		Channels:        getEnvInt("WAVEDIT_CHANNELS", 2),
		SamplesPerPixel: getEnvInt("WAVEDIT_SAMPLES_PER_PIXEL", 1000),
		FadeShape:       getEnvShape("WAVEDIT_FADE_SHAPE", fade.DefaultShape),
		LogLevel:        getEnv("WAVEDIT_LOG_LEVEL", "info"),
		LogFile:         os.Getenv("WAVEDIT_LOG_FILE"),
		LogMaxSize:      getEnvInt("WAVEDIT_LOG_MAX_SIZE", 100),
		LogMaxBackups:   getEnvInt("WAVEDIT_LOG_MAX_BACKUPS", 3),
		LogMaxAge:       getEnvInt("WAVEDIT_LOG_MAX_AGE", 28),
		DisabledStates:  getEnvList("WAVEDIT_DISABLED_STATES"),
		DotEnv:          err == nil,
	}
}

// EnabledStates turns DisabledStates into the override map tracks take.
func (c *Config) EnabledStates() map[string]bool {
	states := make(map[string]bool, len(c.DisabledStates))
	for _, name := range c.DisabledStates {
		states[name] = false
	}
	return states
}
