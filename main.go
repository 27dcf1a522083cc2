package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"zavio/cache"
	"zavio/config"
	"zavio/handlers"
	"zavio/store"
	"zavio/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	token := config.AppConfig.TelegramBotToken
	if token == "" {
		logger.Sugar().Fatal("main: TELEGRAM_BOT_TOKEN is not set")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Telegram: %v", err)
	}
	logger.Info("Authorized on Telegram", zap.String("account", bot.Self.UserName))

	kv := store.Open(
		config.AppConfig.RedisAddr,
		config.AppConfig.RedisPassword,
		config.AppConfig.RedisStoreDB,
		logger,
	)
	handler := handlers.New(bot, kv, cache.New(logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down")
		cancel()
		bot.StopReceivingUpdates()
	}()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := bot.GetUpdatesChan(updateConfig)

	logger.Info("Update loop started", zap.String("dataMode", config.AppConfig.DataMode))
	for update := range updates {
		handler.HandleUpdate(ctx, update)
	}
}
