package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"schedulebot/internal/auth"
	"schedulebot/internal/bot"
	"schedulebot/internal/config"
	"schedulebot/internal/schedule"
	"schedulebot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка конфигурации:", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка инициализации логгера:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("ошибка инициализации базы данных", zap.Error(err))
	}
	defer db.Close()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatal("ошибка инициализации бота", zap.Error(err))
	}

	users := storage.NewUserRepository(db)
	sessions := storage.NewSessionRepository(db)
	entries := storage.NewScheduleRepository(db)

	b := bot.New(
		api,
		sessions,
		auth.NewAuthenticator(users, sessions),
		schedule.NewImporter(users, entries, logger),
		schedule.NewService(entries),
		cfg.UploadsDir,
		logger,
	)

	go func() {
		if err := b.Run(); err != nil {
			logger.Fatal("бот остановлен с ошибкой", zap.Error(err))
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan
	logger.Info("завершение работы")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
