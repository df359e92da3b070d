package main

import (
	"context"
	"log"

	"driven-coach-be/internal/bootstrap"
	"driven-coach-be/internal/config"
	"driven-coach-be/internal/server"
	"driven-coach-be/internal/tracer"
	"driven-coach-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 5. Warm the content snapshots so the first turn doesn't pay the load
	if _, err := container.ContentService.Reload(context.Background()); err != nil {
		log.Printf("Warn: Failed to preload week content: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
