package main

import (
	"context"
	"log"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/config"
	"github.com/jefftrojan/afritrade-rev/internal/db"
	"github.com/jefftrojan/afritrade-rev/internal/docstore"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	srv := server.New(cfg, nil)

	// Connect backing stores in the background so the process binds its port
	// immediately and health checks pass during cold starts.
	go func() {
		gdb, err := db.Connect(cfg)
		if err != nil {
			log.Printf("db connect failed: %v", err)
			return
		}
		if err := gdb.AutoMigrate(
			&model.User{},
			&model.Product{},
			&model.Order{},
			&model.Notification{},
		); err != nil {
			log.Printf("db migrate failed: %v", err)
		}
		srv.SetDB(gdb)
		log.Printf("db ready")
	}()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		client, err := docstore.NewClient(ctx, cfg.FirebaseProjectID)
		if err != nil {
			log.Printf("docstore connect failed: %v", err)
			return
		}
		srv.SetDocstore(client)
		log.Printf("docstore ready")
	}()

	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
