package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xtding233/pachislo-backend/internal/game"
	"github.com/xtding233/pachislo-backend/internal/httpapi"
	"github.com/xtding233/pachislo-backend/internal/session"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	addr := ":" + envOr("PORT", "8080")
	configDir := envOr("CONFIG_DIR", "configs")

	loader := game.NewLoader(configDir)
	resolver := game.NewResolver(loader)

	watcher := game.NewProfileWatcher(game.Paths{BaseDir: configDir}.MachinesDir(), 5*time.Second, func(path string) {
		log.Info("machine profile changed, reloading", zap.String("path", path))
		loader.Invalidate()
	})
	watcher.Start()
	defer watcher.Stop()

	manager := session.NewManager(resolver, log)
	handler := httpapi.SetupRoutes(httpapi.Deps{
		Manager:  manager,
		Resolver: resolver,
		Log:      log,
	})

	log.Info("listening", zap.String("addr", addr), zap.String("config_dir", configDir))
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
