package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	FeedURL string
	Codes   []string

	CronSpec string
	Location string

	DBType string
	DBDSN  string

	SeedUsers []string

	Debug bool
}

// LoadConfig читает окружение поверх дефолтов. Все переменные опциональны:
// без настройки сервис поднимается на in-memory sqlite и публичном фиде ЦБ.
func LoadConfig() (Config, error) {
	if err := godotenv.Overload(); err != nil {
		log.Println(errors.New("Error loading .env file"))
	}

	cfg := Config{
		HTTPPort:  "8080",
		Codes:     []string{"USD", "EUR", "GBP", "AUD"},
		CronSpec:  "0 12 * * *",
		Location:  "Europe/Moscow",
		DBType:    "sqlite",
		DBDSN:     ":memory:",
		SeedUsers: []string{"Ярослав", "Виктория", "Антон"},
	}

	if p := strings.TrimSpace(os.Getenv("HTTP_PORT")); p != "" {
		cfg.HTTPPort = p
	}
	cfg.FeedURL = strings.TrimSpace(os.Getenv("FEED_URL"))
	if raw := strings.TrimSpace(os.Getenv("CURRENCY_CODES")); raw != "" {
		cfg.Codes = splitList(raw)
	}
	if s := strings.TrimSpace(os.Getenv("CRON_SPEC")); s != "" {
		cfg.CronSpec = s
	}
	if l := strings.TrimSpace(os.Getenv("LOCATION")); l != "" {
		cfg.Location = l
	}

	if t := strings.TrimSpace(os.Getenv("DB_TYPE")); t != "" {
		cfg.DBType = t
	}
	switch cfg.DBType {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported DB_TYPE %q", cfg.DBType)
	}
	if d := strings.TrimSpace(os.Getenv("DB_DSN")); d != "" {
		cfg.DBDSN = d
	}
	if cfg.DBType == "postgres" && cfg.DBDSN == ":memory:" {
		return Config{}, fmt.Errorf("DB_DSN is required for postgres")
	}

	if raw := strings.TrimSpace(os.Getenv("SEED_USERS")); raw != "" {
		cfg.SeedUsers = splitList(raw)
	}
	cfg.Debug, _ = strconv.ParseBool(os.Getenv("DEBUG"))

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
