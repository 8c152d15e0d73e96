package config

import (
	"os"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

const AppName = "fincastrimar-web"

type Config struct {
	AppName string
	AppPort string
	AppUrl  string

	DBUrl string

	// Secret the external authenticator signs admin bearer tokens with.
	AdminJWTSecret string

	// Lead notification (optional; disabled when the key is empty).
	SendgridAPIKey string
	ContactFrom    string
	ContactNotify  string

	SeedTestData bool
}

// LoadConfig reads everything from the environment and fails fast on
// missing required vars.
func LoadConfig() *Config {
	cfg := &Config{
		AppName:        AppName,
		AppPort:        mustEnv("APP_PORT"),
		AppUrl:         mustEnv("APP_URL"),
		DBUrl:          mustEnv("DATABASE_URL"),
		AdminJWTSecret: mustEnv("ADMIN_JWT_SECRET"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		ContactFrom:    os.Getenv("CONTACT_FROM_EMAIL"),
		ContactNotify:  os.Getenv("CONTACT_NOTIFY_EMAIL"),

		SeedTestData: os.Getenv("SEED_TEST_DATA") == "true",
	}

	if cfg.SendgridAPIKey != "" && (cfg.ContactFrom == "" || cfg.ContactNotify == "") {
		utils.Logger.Fatal("SENDGRID_API_KEY is set but CONTACT_FROM_EMAIL / CONTACT_NOTIFY_EMAIL are missing")
	}

	utils.Logger.Infof("Loaded config for %s", AppName)
	return cfg
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		utils.Logger.Fatalf("%s env var is missing", key)
	}
	return v
}
