package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BankURL        string
	BankTimeout    time.Duration
	JaegerEndpoint string
	Port           string
}

func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	bankURL := os.Getenv("BANK_URL")
	if bankURL == "" {
		bankURL = "http://localhost:8080"
	}

	bankTimeout := 3 * time.Second
	if v := os.Getenv("BANK_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			bankTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	return &Config{
		BankURL:        bankURL,
		BankTimeout:    bankTimeout,
		JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),
		Port:           port,
	}
}
