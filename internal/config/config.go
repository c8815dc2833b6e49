package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	LogLevel    string

	Trading struct {
		Symbol         string
		PositionSize   float64
		InitialBalance float64
	}

	Strategy struct {
		Aggressiveness    float64
		SentimentLookback time.Duration
	}

	Data struct {
		Root     string
		Exchange string
		Interval string
	}

	Monitoring struct {
		PrometheusPort int
		HealthPort     int
	}
}

func Load() *Config {
	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
	}

	cfg.Trading.Symbol = getEnv("TRADING_SYMBOL", "BTCUSDT")
	cfg.Trading.PositionSize = getEnvFloat("POSITION_SIZE", 0.1)
	cfg.Trading.InitialBalance = getEnvFloat("INITIAL_BALANCE", 10000.0)

	cfg.Strategy.Aggressiveness = getEnvFloat("STRATEGY_AGGRESSIVENESS", 50)
	cfg.Strategy.SentimentLookback = getEnvDuration("SENTIMENT_LOOKBACK", 2*time.Hour)

	cfg.Data.Root = getEnv("DATA_ROOT", "data")
	cfg.Data.Exchange = getEnv("DATA_EXCHANGE", "bybit")
	cfg.Data.Interval = getEnv("DATA_INTERVAL", "5m")

	cfg.Monitoring.PrometheusPort = getEnvInt("PROMETHEUS_PORT", 8080)
	cfg.Monitoring.HealthPort = getEnvInt("HEALTH_PORT", 8081)

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
