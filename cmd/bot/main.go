package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/kuryanov322-creator/kind-energy-bot/config"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/dialog"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/llm"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/scheduler"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/store"
	"github.com/kuryanov322-creator/kind-energy-bot/internal/telegram"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_TOKEN is not set")
	}

	loc := cfg.Location()
	st := store.Open(cfg.DataPath, log)

	// Missing AI credentials degrade to static fallback replies.
	var client llm.Client
	if cfg.UseAI && cfg.DeepSeekKey != "" {
		client = llm.NewDeepSeekClient(cfg.DeepSeekKey, cfg.LLMModel, cfg.LLMBaseURL)
	} else {
		log.Info("AI augmentation disabled, using fallback replies")
	}
	assistant := llm.NewAssistant(client, log)

	sched := scheduler.New(st, loc, cfg.TestMode, log)
	engine := dialog.New(st, assistant, sched, loc, log)

	bot, err := telegram.New(cfg.TelegramToken, engine, log)
	if err != nil {
		log.Fatalf("starting telegram bot: %v", err)
	}
	sched.SetSend(bot.Send)
	sched.Start()
	defer sched.Stop()

	// Restore timers for users who already picked a focus.
	restored := 0
	for _, id := range st.IDs() {
		if u, ok := st.Get(id); ok && u.Focus != store.FocusNone && u.ChatID != 0 {
			sched.Arm(id, u.ChatID)
			restored++
		}
	}
	if restored > 0 {
		log.Infow("restored timers", "users", restored)
	}

	go bot.Run()
	log.Infow("kind energy bot is running", "test_mode", cfg.TestMode)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	bot.Stop()
	if err := st.Flush(); err != nil {
		log.Warnw("final flush", "error", err)
	}
}
