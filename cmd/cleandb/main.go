package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"kanbanboard/pkg/app"
	"kanbanboard/pkg/common"
)

func main() {
	// Logging works before config is read; app replaces this once it loads config.json.
	if err := common.InitLogger(); err != nil {
		panic(err)
	}

	if err := run(); err != nil {
		common.GetLogger().Error().Err(err).Msg("cleandb failed")
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Execute(ctx)
}
