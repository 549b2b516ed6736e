package main

import (
	"log"
	"log/slog"
	"net/http"

	"github.com/csg33k/attrition-form/internal/adapters/pdf"
	"github.com/csg33k/attrition-form/internal/adapters/predictor"
	sqliteadapter "github.com/csg33k/attrition-form/internal/adapters/sqlite"
	"github.com/csg33k/attrition-form/internal/config"
	"github.com/csg33k/attrition-form/internal/fields"
	"github.com/csg33k/attrition-form/internal/handlers"
	"github.com/csg33k/attrition-form/internal/normalize"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	repo, err := sqliteadapter.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer repo.Close()

	client := predictor.New(cfg.PredictURL, cfg.PredictTimeout)
	h := handlers.New(normalize.New(fields.Employee()), client, repo, pdf.New(), cfg.HistoryLimit)

	slog.Info("attrition form running", "addr", "http://localhost:"+cfg.Port)
	slog.Info("configuration", "db", cfg.DBPath, "predict_url", cfg.PredictURL, "timeout", cfg.PredictTimeout)
	if err := http.ListenAndServe(":"+cfg.Port, h.Routes()); err != nil {
		log.Fatal(err)
	}
}
