package main

import (
	"log"

	"erp-be/internal/config"
	"erp-be/internal/db"
	"erp-be/internal/httpserver"
	"erp-be/internal/item"
	"erp-be/internal/logger"
	"erp-be/internal/order"
	"erp-be/internal/report"
	"erp-be/internal/tag"
	"erp-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	tagRepo := tag.NewRepository(database)
	tagSvc := tag.NewService(tagRepo)

	itemRepo := item.NewRepository(database)
	itemSvc := item.NewService(itemRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	reportRepo := report.NewRepository(database)
	reportSvc := report.NewService(reportRepo)

	e := httpserver.New(httpserver.Deps{
		Users:   userSvc,
		Tags:    tagSvc,
		Items:   itemSvc,
		Orders:  orderSvc,
		Reports: reportSvc,
	})

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(e.Start(":" + cfg.AppPort))
}
