package config

import "os"

type Config struct {
	Port          string
	Env           string
	DatabaseURL   string
	SessionSecret string
}

// databaseURLVars is the priority order in which the connection string is
// resolved; the first non-empty variable wins.
var databaseURLVars = []string{
	"DATABASE_URL",
	"NEON_DATABASE_URL",
	"POSTGRES_URL",
	"POSTGRES_PRISMA_URL",
	"POSTGRES_URL_NON_POOLING",
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DatabaseURL:   resolveDatabaseURL(),
		SessionSecret: getEnv("SESSION_SECRET", "supersecretsessionkey"),
	}
}

// IsProduction reports whether the server runs with production settings,
// which controls the Secure flag on session cookies.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func resolveDatabaseURL() string {
	for _, key := range databaseURLVars {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
