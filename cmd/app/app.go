package main

import (
	"os"

	"github.com/DRSN-tech/catalog-service/internal/app"
	config "github.com/DRSN-tech/catalog-service/internal/cfg"
	"github.com/DRSN-tech/catalog-service/pkg/logger"
	"github.com/joho/godotenv"
)

//	@title			Catalog Service API
//	@version		1.0
//	@description	Сервис каталога товаров: CRUD продуктов и справочник категорий.
//	@host			localhost:8080
//	@BasePath		/
func main() {
	log := logger.NewSlogLogger()

	if err := godotenv.Load(); err != nil {
		log.Infof(".env file not found, using process environment")
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application := app.NewApp(cfg, log)
	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
