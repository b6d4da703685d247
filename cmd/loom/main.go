package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/minseolab/loom/internal/api"
	"github.com/minseolab/loom/internal/catalog"
	"github.com/minseolab/loom/internal/config"
	"github.com/minseolab/loom/internal/crypto"
	"github.com/minseolab/loom/internal/db"
	"github.com/minseolab/loom/internal/repository"
	"github.com/minseolab/loom/internal/services"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		serve()
		return
	}
	fmt.Println("loom v0.1.0")
	fmt.Println("Usage: loom serve")
}

func serve() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadDefault()
	if err != nil {
		slog.Error("config error", "err", err)
		os.Exit(1)
	}

	memWorkflows := repository.NewMemoryWorkflows()
	memCredentials := repository.NewMemoryCredentials()

	var workflows repository.WorkflowRepository = memWorkflows
	var credentials repository.CredentialRepository = memCredentials

	if cfg.Database.URL != "" {
		ctx := context.Background()
		database, err := db.New(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("database error", "err", err)
			os.Exit(1)
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			slog.Error("migration error", "err", err)
			os.Exit(1)
		}
		workflows = repository.NewPersistentWorkflows(memWorkflows, database)
		credentials = repository.NewPersistentCredentials(memCredentials, database)
		slog.Info("using postgresql storage")
	} else {
		slog.Info("using in-memory storage")
	}

	key, err := crypto.ParseKey(os.Getenv("LOOM_ENCRYPTION_KEY"))
	if err != nil {
		slog.Error("encryption key error", "err", err)
		os.Exit(1)
	}
	enc, err := crypto.NewEncryptor(key)
	if err != nil {
		slog.Error("encryption key error", "err", err)
		os.Exit(1)
	}
	credentialSvc := services.NewCredentialService(credentials, enc)

	srv := api.NewServer(workflows, credentialSvc, catalog.Default())
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting loom server", "addr", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}
