package main

import (
	"os"

	"github.com/yamao-tech/catalog-backend/internal/app"
	config "github.com/yamao-tech/catalog-backend/internal/cfg"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
)

func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
