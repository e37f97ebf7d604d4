package main

import (
	"context"
	"os"
	"os/signal"
	"stayledger/config"
	"stayledger/di"
	"stayledger/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()

	if err := worker.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Worker stopped with error")
	}

	log.Info().Msg("Worker shut down.")
}
