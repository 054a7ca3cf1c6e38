// Package main starts the personal finance web application.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/pluto-fin/pluto/cmd/httpserver"
	"github.com/pluto-fin/pluto/db"
	"github.com/pluto-fin/pluto/internal/middleware"
	"github.com/pluto-fin/pluto/pkg/configpkg"
	"github.com/pluto-fin/pluto/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	if err := db.RunMigrations(config.DBSource); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply migrations")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("PLUTO SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
