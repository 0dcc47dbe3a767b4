package main

import (
	"github.com/joho/godotenv"

	"github.com/erick-Breno/gestao/internal/auth"
	"github.com/erick-Breno/gestao/internal/config"
	"github.com/erick-Breno/gestao/internal/database"
	"github.com/erick-Breno/gestao/internal/gateway"
	"github.com/erick-Breno/gestao/internal/gateway/localstore"
	"github.com/erick-Breno/gestao/internal/gateway/postgres"
	httpserver "github.com/erick-Breno/gestao/internal/http"
	"github.com/erick-Breno/gestao/internal/logger"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()
	log := logger.New()

	var gw gateway.Gateway
	var authn auth.Authenticator

	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		gw = postgres.New(db)
		authn = auth.NewDB(db)
	case config.BackendLocal:
		local, err := localstore.New(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("local store init failed")
		}
		fileAuth, err := auth.NewFile(cfg.DataDir)
		if err != nil {
			log.Fatal().Err(err).Msg("local auth init failed")
		}
		gw = local
		authn = fileAuth
	default:
		log.Fatal().Str("backend", cfg.Backend).Msg("unknown LEDGER_BACKEND")
	}

	r := httpserver.NewServer(cfg, gw, authn, log)
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
