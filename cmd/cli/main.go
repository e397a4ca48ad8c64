package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"coarank/adapters/excel"
	"coarank/app"
	"coarank/domain/coa"
	"coarank/internal/config"
	"coarank/internal/logging"
	"coarank/internal/pipeline"
	"coarank/internal/report"
)

// scenarioFile is the CLI input: one situation plus its candidate pool
type scenarioFile struct {
	Situation  coa.Situation   `json:"situation"`
	Candidates []coa.Candidate `json:"candidates"`
}

func main() {
	_ = godotenv.Load()

	scenarioPath := flag.String("scenario", "", "path to a scenario JSON file (situation + candidates)")
	topK := flag.Int("top-k", pipeline.DefaultTopK, "number of ranked candidates to return")
	width := flag.Int("pass-two-width", pipeline.DefaultPassTwoWidth, "candidates refined in pass 2")
	noGate := flag.Bool("no-gate", false, "disable the METT-C exclusion gate")
	asJSON := flag.Bool("json", false, "emit the raw result as JSON instead of a report")
	flag.Parse()

	if *scenarioPath == "" {
		log.Fatal("usage: coarank -scenario scenario.json [-top-k N] [-json]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewDefaultLogger()

	data, err := os.ReadFile(*scenarioPath)
	if err != nil {
		log.Fatalf("scenario: %v", err)
	}
	var scenario scenarioFile
	if err := json.Unmarshal(data, &scenario); err != nil {
		log.Fatalf("scenario: %v", err)
	}

	collab := app.Collaborators{}
	if cfg.Paths.DataWorkbook != "" {
		if tables, err := excel.LoadTables(cfg.Paths.DataWorkbook); err == nil {
			collab.Tables = tables
		} else {
			logger.Warn("could not load data workbook: %v", err)
		}
	}

	gate := !*noGate
	service := app.NewRankService(collab, cfg.Ranking, logger)
	result, err := service.RankDetailed(context.Background(), scenario.Situation, scenario.Candidates, app.Options{
		TopK:         *topK,
		PassTwoWidth: *width,
		UseMETTCGate: &gate,
	})
	if err != nil {
		log.Fatalf("rank: %v", err)
	}

	if *asJSON {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Print(report.Markdown(scenario.Situation, result))
}
