package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	AppName     string
	AppVersion  string

	// DataDir holds the question banks plus the optional topics.yaml manifest.
	DataDir string

	// StaticDir, when set, is served as the built frontend with an
	// index.html fallback for client-side routes.
	StaticDir string

	// Technologies and Counts are the closed sets accepted by the
	// questions endpoint. The quiz service itself tolerates anything and
	// simply degrades; these guard the HTTP boundary.
	Technologies []string
	Counts       []int

	Events EventConfig
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; deployments set the environment directly.
	_ = godotenv.Load()

	counts, err := parseCounts(getEnv("ALLOWED_COUNTS", "10,20,30"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		AppName:      getEnv("APP_NAME", "fullstack-quiz"),
		AppVersion:   getEnv("APP_VERSION", "dev"),
		DataDir:      getEnv("DATA_DIR", "data"),
		StaticDir:    getEnv("STATIC_DIR", ""),
		Technologies: parseList(getEnv("ALLOWED_TECHNOLOGIES", "spring,java,angular")),
		Counts:       counts,
		Events:       loadEventConfig(),
	}, nil
}

// AllowsTechnology reports whether technology is one of the configured topic
// keys, matched case-insensitively.
func (c *Config) AllowsTechnology(technology string) bool {
	for _, t := range c.Technologies {
		if strings.EqualFold(t, technology) {
			return true
		}
	}
	return false
}

// AllowsCount reports whether count is one of the configured quiz sizes.
func (c *Config) AllowsCount(count int) bool {
	for _, n := range c.Counts {
		if n == count {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseList(value string) []string {
	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			list = append(list, strings.ToLower(part))
		}
	}
	return list
}

func parseCounts(value string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid quiz count %q in ALLOWED_COUNTS", part)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
