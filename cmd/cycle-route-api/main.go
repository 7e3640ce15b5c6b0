// README: Entry point; loads config, wires the planner core, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/YukiAminaka/cycle-route/internal/config"
	httptransport "github.com/YukiAminaka/cycle-route/internal/http"
	"github.com/YukiAminaka/cycle-route/internal/infra"
	"github.com/YukiAminaka/cycle-route/internal/maps"
	"github.com/YukiAminaka/cycle-route/internal/modules/routes"
	"github.com/YukiAminaka/cycle-route/internal/modules/search"
	"github.com/YukiAminaka/cycle-route/internal/modules/waypoint"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var kv routes.KV
	if cfg.Storage.RedisAddr != "" {
		kv = routes.NewRedisKV(infra.NewRedis(cfg.Storage.RedisAddr))
	} else {
		fileKV, err := routes.NewFileKV(cfg.Storage.DataDir)
		if err != nil {
			log.Fatal(err)
		}
		kv = fileKV
	}
	routeStore := routes.NewStore(kv)

	searchClient := search.NewClient(cfg.Search.AccessToken, nil)
	if cfg.Search.AccessToken == "" {
		log.Print("MAPBOX_ACCESS_TOKEN not set; search suggestions disabled")
	}

	planner := waypoint.NewSession(nil)
	engine := buildEngine(cfg)
	if engine != nil {
		planner.Attach(engine)
	} else {
		log.Print("no directions credential; waypoint mutations are no-ops")
	}

	handler := httptransport.NewRouter(httptransport.ServerDeps{
		Planner:      planner,
		SearchClient: searchClient,
		Routes:       routeStore,
		MaptilerKey:  cfg.MaptilerKey,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	planner.Detach()
	if engine != nil {
		engine.Close()
	}
}

// routingEngine is what main owns: the session's adapter surface plus the
// Close that ends its notification stream.
type routingEngine interface {
	waypoint.Engine
	Close()
}

// buildEngine picks the directions provider. A missing credential returns
// nil: the session stays unattached and mutations quietly no-op until one
// is configured.
func buildEngine(cfg config.Config) routingEngine {
	switch cfg.Directions.Provider {
	case "google":
		if cfg.Directions.GoogleAPIKey == "" {
			return nil
		}
		engine, err := maps.NewGoogleEngine(cfg.Directions.GoogleAPIKey, cfg.Directions.Profile)
		if err != nil {
			log.Printf("google directions init: %v", err)
			return nil
		}
		return engine
	default:
		if cfg.Search.AccessToken == "" {
			return nil
		}
		return maps.NewMapboxEngine(cfg.Search.AccessToken, cfg.Directions.Profile, nil)
	}
}
