package main

import (
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tabular/internal/api"
	"tabular/internal/config"
	"tabular/internal/engine"
)

func main() {
	cfgPath := flag.String("config", "", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// The API goes live immediately and answers 503 until the dataset
	// lands; the load runs in the background.
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)

	go func() {
		log.Printf("BACKGROUND: loading dataset %s...", cfg.Dataset.Path)
		t0 := time.Now()

		table, err := engine.Load(cfg.Dataset.Path)
		if err != nil {
			log.Fatalf("BACKGROUND: load failed: %v", err)
		}
		h.SetTable(table)

		log.Printf("BACKGROUND: dataset ready in %v. API is fully ready.", time.Since(t0))
	}()

	log.Printf("Server ready on %s (data loading in background...)", cfg.Addr)
	e.Logger.Fatal(e.Start(cfg.Addr))
}
