//go:build js && wasm

package main

import (
	"github.com/syumai/workers"

	"github.com/dvcrn/blockmason-link-go/internal/config"
	"github.com/dvcrn/blockmason-link-go/internal/logger"
	"github.com/dvcrn/blockmason-link-go/internal/proxy"
	"github.com/dvcrn/blockmason-link-go/link"
)

func main() {
	client, err := link.New(config.Load())
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to create Link client")
	}

	workers.Serve(proxy.NewServer(client))
}
