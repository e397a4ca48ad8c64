package main

import (
	"log"

	"github.com/joho/godotenv"

	"coarank/adapters/api"
	"coarank/adapters/excel"
	"coarank/adapters/postgres"
	"coarank/app"
	"coarank/internal/config"
	"coarank/internal/logging"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewDefaultLogger()

	collab := app.Collaborators{}

	if cfg.Paths.DataWorkbook != "" {
		tables, err := excel.LoadTables(cfg.Paths.DataWorkbook)
		if err != nil {
			logger.Warn("could not load data workbook, tabular factors degrade to defaults: %v", err)
		} else {
			collab.Tables = tables
			logger.Info("loaded tabular inputs from %s", cfg.Paths.DataWorkbook)
		}
	}

	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			logger.Warn("could not connect to postgres, runs will not be persisted: %v", err)
		} else {
			collab.Runs = postgres.NewRankingRepository(db)
		}
	}

	service := app.NewRankService(collab, cfg.Ranking, logger)
	server := api.NewServer(service, cfg.Server, logger)
	if err := server.Run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
