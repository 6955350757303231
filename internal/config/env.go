// Package config provides configuration helpers for go-shotmatch commands.
package config

import (
	"fmt"
	"os"
)

// Default daemon configuration.
const (
	DefaultWebPort      = "8090"
	DefaultOllamaURL    = "http://127.0.0.1:11434"
	DefaultOllamaModel  = "llama3.2-vision"
	DefaultAdvisorModel = "gemini-2.0-flash"
)

// WebPort returns the dashboard port from SHOTMATCH_PORT, or the default.
func WebPort() string {
	if p := os.Getenv("SHOTMATCH_PORT"); p != "" {
		return p
	}
	return DefaultWebPort
}

// LogLevel returns the log level from LOG_LEVEL, or "info".
func LogLevel() string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}

// GeminiAPIKeyRequired returns the Gemini key from GOOGLE_API_KEY.
// Exits with usage help if not set.
func GeminiAPIKeyRequired() string {
	key := os.Getenv("GOOGLE_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: GOOGLE_API_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: GOOGLE_API_KEY=... go run ./cmd/shotmatch")
		os.Exit(1)
	}
	return key
}

// OllamaURL returns the Ollama endpoint from OLLAMA_URL, or the default.
func OllamaURL() string {
	if u := os.Getenv("OLLAMA_URL"); u != "" {
		return u
	}
	return DefaultOllamaURL
}

// OllamaModel returns the Ollama model from OLLAMA_MODEL, or the default.
func OllamaModel() string {
	if m := os.Getenv("OLLAMA_MODEL"); m != "" {
		return m
	}
	return DefaultOllamaModel
}

// Advisor returns the advisor provider selector from SHOTMATCH_ADVISOR:
// "gemini", "ollama" or "mock". Defaults to "mock" so the daemon runs
// without any external service.
func Advisor() string {
	if a := os.Getenv("SHOTMATCH_ADVISOR"); a != "" {
		return a
	}
	return "mock"
}
