package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/headsup/internal/bot"
	"github.com/lox/headsup/internal/randutil"
	"github.com/lox/headsup/internal/remote"
)

type BotCmd struct {
	Strategy string `arg:"" help:"Bot strategy (calling, fold, maniac, random, tag)"`
	Addr     string `default:"127.0.0.1:8090" env:"HEADSUP_BOT_ADDR" help:"Address to listen on"`
	Seed     int64  `help:"Seed for the bot's randomness (0 = time based)"`
}

func (c *BotCmd) Run(ctx context.Context, logger *log.Logger) error {
	provider, err := bot.ByName(c.Strategy, randutil.New(randutil.Seed(c.Seed)), logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", remote.NewHandler(provider, logger))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}()

	logger.Info("Serving bot", "strategy", c.Strategy, "url", fmt.Sprintf("ws://%s/ws", c.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
