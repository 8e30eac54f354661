package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	APISecret       string
	DatabaseURL     string
	Env             string
	LocalStoreDir   string

	// Search providers
	RapidAPIKey         string
	AdzunaAppID         string
	AdzunaAppKey        string
	FranceTravailID     string
	FranceTravailSecret string
	GoogleSearchAPIKey  string
	GoogleSearchCX      string

	// Cover-letter generation
	LLMProvider     string
	LLMModel        string
	AnthropicAPIKey string
	XAIAPIKey       string

	// Email
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	// Candidate profile injected into letters
	ProfileName         string
	ProfileAddress      string
	ProfileEmail        string
	ProfilePhone        string
	ProfileEducation    string
	ProfileSkills       string
	ProfileExperience   string
	ProfileObjective    string
	ProfileAvailability string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	secret := os.Getenv("API_SECRET")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	if env == "production" && secret == "" {
		log.Printf("API_SECRET is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		APISecret:       secret,
		DatabaseURL:     dbURL,
		Env:             env,
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),

		RapidAPIKey:         getEnv("RAPIDAPI_KEY", ""),
		AdzunaAppID:         getEnv("ADZUNA_APP_ID", ""),
		AdzunaAppKey:        getEnv("ADZUNA_APP_KEY", ""),
		FranceTravailID:     getEnv("FRANCE_TRAVAIL_CLIENT_ID", ""),
		FranceTravailSecret: getEnv("FRANCE_TRAVAIL_CLIENT_SECRET", ""),
		GoogleSearchAPIKey:  getEnv("GOOGLE_SEARCH_API_KEY", ""),
		GoogleSearchCX:      getEnv("GOOGLE_SEARCH_CX", ""),

		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "anthropic")),
		LLMModel:        getEnv("LLM_MODEL", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		XAIAPIKey:       getEnv("XAI_API_KEY", ""),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),

		ProfileName:         getEnv("PROFILE_NAME", ""),
		ProfileAddress:      getEnv("PROFILE_ADDRESS", ""),
		ProfileEmail:        getEnv("PROFILE_EMAIL", ""),
		ProfilePhone:        getEnv("PROFILE_PHONE", ""),
		ProfileEducation:    getEnv("PROFILE_EDUCATION", ""),
		ProfileSkills:       getEnv("PROFILE_SKILLS", ""),
		ProfileExperience:   getEnv("PROFILE_EXPERIENCE", ""),
		ProfileObjective:    getEnv("PROFILE_OBJECTIVE", ""),
		ProfileAvailability: getEnv("PROFILE_AVAILABILITY", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
