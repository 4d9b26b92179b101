package main

import (
	"context"
	"log"
	"net/http"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/config"
	"github.com/singhdivyam772/workflow-builder-assignment/internal/serverapp"
)

func main() {
	cfg, err := config.Load("workflow_config.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	st, closeStorage, err := serverapp.OpenStorage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer closeStorage()

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		StaticDir:     cfg.Server.StaticDir,
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
		Logger:        log.Default(),
		Storage:       st,
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s (storage=%s)", cfg.Server.Addr, cfg.Storage.Backend)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
