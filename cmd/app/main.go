//go:generate swag init -g cmd/app/main.go -d ../../ -o ../../docs

// @title stayledger API
// @version 1.0
// @description Booking storefront with affiliate attribution, commission ledger and withdrawals.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"stayledger/config"
	"stayledger/di"
	"stayledger/helper"
	"stayledger/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
