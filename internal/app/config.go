package app

import "os"

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	// KafkaBrokers — список брокеров через запятую; пусто — без Kafka.
	KafkaBrokers string
	// PostgresDSN — строка подключения; пусто — in-memory хранилище заказов.
	PostgresDSN string
}

// DefaultConfig возвращает базовые адреса для API и HTTP-метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// ConfigFromEnv формирует конфигурацию, позволяя переопределить настройки
// через переменные окружения.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("ECOM_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ECOM_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	cfg.KafkaBrokers = os.Getenv("KAFKA_BROKERS")
	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")
	return cfg
}
