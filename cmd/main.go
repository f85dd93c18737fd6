// Package bankoffice provides the API to manage users, accounts,
// transactions, KYC verification and account statements.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/clearledger/bank-office/cmd/httpserver"
	"github.com/clearledger/bank-office/internal/middleware"
	"github.com/clearledger/bank-office/pkg/configpkg"
	"github.com/clearledger/bank-office/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("BANK OFFICE API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
