package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP_PORT string `env:"HTTP_PORT"`
	DB_STRING string `env:"DB_STRING"`

	// Telegram
	BOT_TOKEN            string `env:"BOT_TOKEN"`
	PUBLIC_BASE_URL      string `env:"PUBLIC_BASE_URL"`
	WEBHOOK_SECRET_TOKEN string `env:"WEBHOOK_SECRET_TOKEN"`
	RESTAURANT_CHAT_ID   string `env:"RESTAURANT_CHAT_ID"`
	WEB_APP_URL          string `env:"WEB_APP_URL"`

	// External services
	GEMINI_API_KEY string `env:"GEMINI_API_KEY"`

	// Order event stream (optional)
	KAFKA_BROKERS string `env:"KAFKA_BROKERS"`
	KAFKA_TOPIC   string `env:"KAFKA_TOPIC"`

	// Driver simulation
	DriverSimDuration time.Duration
	DriverSimInterval time.Duration
	RestaurantLat     float64
	RestaurantLon     float64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTP_PORT:            os.Getenv("HTTP_PORT"),
		DB_STRING:            os.Getenv("DB_STRING"),
		BOT_TOKEN:            os.Getenv("BOT_TOKEN"),
		PUBLIC_BASE_URL:      os.Getenv("PUBLIC_BASE_URL"),
		WEBHOOK_SECRET_TOKEN: os.Getenv("WEBHOOK_SECRET_TOKEN"),
		RESTAURANT_CHAT_ID:   os.Getenv("RESTAURANT_CHAT_ID"),
		WEB_APP_URL:          os.Getenv("WEB_APP_URL"),
		GEMINI_API_KEY:       os.Getenv("GEMINI_API_KEY"),
		KAFKA_BROKERS:        os.Getenv("KAFKA_BROKERS"),
		KAFKA_TOPIC:          os.Getenv("KAFKA_TOPIC"),
	}

	if cfg.HTTP_PORT == "" {
		cfg.HTTP_PORT = "8080"
	}
	if cfg.KAFKA_TOPIC == "" {
		cfg.KAFKA_TOPIC = "pizzeria.order-events"
	}

	cfg.DriverSimDuration = secondsEnv("DRIVER_SIM_DURATION", 60)
	cfg.DriverSimInterval = secondsEnv("DRIVER_SIM_INTERVAL", 3)

	// Plaza 24 de Septiembre, Santa Cruz
	cfg.RestaurantLat = floatEnv("RESTAURANT_LAT", -17.7833)
	cfg.RestaurantLon = floatEnv("RESTAURANT_LON", -63.1821)

	return cfg, nil
}

func secondsEnv(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(def) * time.Second
}

func floatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
