package main

import (
	"lagerbok/internal/health"
	"lagerbok/internal/storages/handler"
	"lagerbok/internal/storages/repository"
	"lagerbok/internal/storages/service"
	"lagerbok/pkg/app"
	"lagerbok/pkg/config"
)

const ServiceName = "storages"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Storages service")
	storageService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewStorageHandler(storageService, cfg.Log),
		health.NewHandler(ServiceName, cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.StorageService {
	storageRepo := repository.NewMongoStorageRepository(cfg)
	storageService := service.NewStorageService(storageRepo, cfg)

	cfg.Log.Info("Storage service initialized", "database", cfg.MongoDatabaseName)
	return storageService
}
