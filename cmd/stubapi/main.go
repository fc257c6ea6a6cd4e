package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/prepstack/prepadmin/internal/config"
	"github.com/prepstack/prepadmin/internal/stubapi"
)

func main() {
	_ = godotenv.Load()
	cfg := config.StubFromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	store, err := stubapi.Open(ctx, stubapi.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	defer store.Close()

	if err := store.Seed(ctx); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	files, err := stubapi.NewFSStore(cfg.UploadBasePath)
	if err != nil {
		log.Fatalf("upload store: %v", err)
	}

	srv := stubapi.NewServer(store, stubapi.NewAuthService(cfg.AuthSecret), files, cfg.AdminEmail, cfg.AdminPassHash)

	log.Printf("stub admin API listening on %s (driver=%s)", cfg.HTTPAddr, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, stubapi.Router(srv, cfg.CORSOrigins)); err != nil {
		log.Fatal(err)
	}
}
