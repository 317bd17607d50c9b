package config

import "os"

// AIConfig holds the advisory (Gemini) settings. The API key is not here:
// it is supplied by the user at intake and lives only in their session.
type AIConfig struct {
	BaseURL     string  `json:"baseUrl"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	TimeoutMS   int     `json:"timeoutMs"`
}

// DefaultAIConfig returns the advisory configuration from the environment.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		BaseURL:     getEnvOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Model:       getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		Temperature: getEnvFloatOrDefault("GEMINI_TEMPERATURE", 1.3),
		TimeoutMS:   getEnvIntOrDefault("GEMINI_TIMEOUT_MS", 30000),
	}
}

// ModelEndpoint returns the full generateContent endpoint.
func (c *AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
