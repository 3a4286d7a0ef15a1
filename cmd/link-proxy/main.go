package main

import (
	"github.com/dvcrn/blockmason-link-go/internal/config"
	"github.com/dvcrn/blockmason-link-go/internal/env"
	"github.com/dvcrn/blockmason-link-go/internal/logger"
	"github.com/dvcrn/blockmason-link-go/internal/proxy"
	"github.com/dvcrn/blockmason-link-go/link"
)

func main() {
	port := env.GetOrDefault("PORT", "9878")

	client, err := link.New(config.Load())
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to create Link client")
	}

	srv := proxy.NewServer(client)
	if err := srv.Start(":" + port); err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to start server")
	}
}
