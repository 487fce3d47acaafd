package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config — настройки бота, читаются из окружения (и .env, если он есть)
type Config struct {
	BotToken     string // Токен Telegram-бота (обязателен)
	DatabasePath string // Путь к файлу sqlite
	UploadsDir   string // Каталог для загружаемых файлов расписания
	LogLevel     string // Уровень логирования: debug, info, warn, error
}

// Load читает конфигурацию из окружения
func Load() (Config, error) {
	// .env — для локальной разработки; отсутствие файла не ошибка
	_ = godotenv.Load()

	cfg := Config{
		BotToken:     os.Getenv("BOT_TOKEN"),
		DatabasePath: getEnv("DATABASE_PATH", "data/schedule_bot.db"),
		UploadsDir:   getEnv("UPLOADS_DIR", "uploads"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	if cfg.BotToken == "" {
		return Config{}, fmt.Errorf("не задана переменная окружения BOT_TOKEN")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
