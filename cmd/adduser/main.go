// Command adduser creates a user for either backend. There is no public
// signup endpoint; users are provisioned from the command line.
package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/erick-Breno/gestao/internal/auth"
	"github.com/erick-Breno/gestao/internal/config"
	"github.com/erick-Breno/gestao/internal/database"
	"github.com/erick-Breno/gestao/internal/logger"
	"github.com/erick-Breno/gestao/internal/models"
)

func main() {
	email := flag.String("email", "", "user email")
	password := flag.String("password", "", "user password")
	flag.Parse()

	_ = godotenv.Load(".env")
	cfg := config.Load()
	log := logger.New()

	if *email == "" || *password == "" {
		log.Fatal().Msg("both -email and -password are required")
	}

	ctx := context.Background()
	var user models.User
	var err error

	switch cfg.Backend {
	case config.BackendPostgres:
		db, cerr := database.Connect(cfg)
		if cerr != nil {
			log.Fatal().Err(cerr).Msg("database connection failed")
		}
		if merr := database.Migrate(db); merr != nil {
			log.Fatal().Err(merr).Msg("migration failed")
		}
		user, err = auth.NewDB(db).Register(ctx, *email, *password)
	case config.BackendLocal:
		fileAuth, cerr := auth.NewFile(cfg.DataDir)
		if cerr != nil {
			log.Fatal().Err(cerr).Msg("local auth init failed")
		}
		user, err = fileAuth.Register(ctx, *email, *password)
	default:
		log.Fatal().Str("backend", cfg.Backend).Msg("unknown LEDGER_BACKEND")
	}

	if err != nil {
		log.Fatal().Err(err).Msg("user creation failed")
	}
	log.Info().Str("id", user.ID).Str("email", user.Email).Msg("user created")
}
