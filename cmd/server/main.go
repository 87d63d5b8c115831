package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shiva/cityroute/config"
	"github.com/shiva/cityroute/internal/handler"
	"github.com/shiva/cityroute/internal/middleware"
	"github.com/shiva/cityroute/internal/model"
	"github.com/shiva/cityroute/internal/render"
	"github.com/shiva/cityroute/internal/repository"
	"github.com/shiva/cityroute/internal/service"
	"github.com/shiva/cityroute/pkg/cache"
	"github.com/shiva/cityroute/pkg/db"
)

// backends holds the optional stores, nil when unused.
type backends struct {
	pg     *pgxpool.Pool
	sqlite *sql.DB
	redis  *redis.Client
}

func (b *backends) Close() {
	if b.pg != nil {
		b.pg.Close()
	}
	if b.sqlite != nil {
		b.sqlite.Close()
	}
	if b.redis != nil {
		b.redis.Close()
	}
}

func main() {
	// ── Load configuration ──────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	stores := &backends{}
	defer stores.Close()

	// ── Load catalog ────────────────────────────────────
	source, err := openCatalogSource(ctx, cfg, stores)
	if err != nil {
		log.Fatalf("failed to open catalog source: %v", err)
	}
	catalog, err := service.LoadCatalog(ctx, source)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	log.Printf("✓ Catalog loaded from %s: %d cities", cfg.Catalog.Source, catalog.Len())

	// ── Connect to Redis ────────────────────────────────
	renderers := render.Multi{render.LogRenderer{Verbose: cfg.Route.LogSteps}}
	if cfg.Redis.Enabled {
		stores.redis, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("failed to connect to Redis: %v", err)
		}
		log.Println("✓ Redis connected")
		renderers = append(renderers,
			render.NewRedisPublisher(stores.redis, cfg.Redis.ChannelPrefix, cfg.Route.Currency))
	}

	// ── Initialize layers ───────────────────────────────
	finder := service.NewPathFinder(catalog,
		service.WithNeighborCount(cfg.Route.NeighborCount),
		service.WithStepDelay(cfg.Route.StepDelay),
	)
	journeys := service.NewJourneyService(finder, renderers, service.CostConfig{
		AverageSpeedKmh:   cfg.Route.AverageSpeedKmh,
		MaxFuelEfficiency: cfg.Route.MaxFuelEfficiency,
		MaxFuelPrice:      cfg.Route.MaxFuelPrice,
		Currency:          cfg.Route.Currency,
	})

	cityHandler := handler.NewCityHandler(catalog, cfg.Route.NeighborCount)
	routeHandler := handler.NewRouteHandler(journeys)

	// ── Setup router ────────────────────────────────────
	router := handler.NewRouter(cityHandler, routeHandler, healthHandler(catalog, stores))

	// Wrap with CORS so browser map clients can call the API.
	handler := middleware.CORS(middleware.Recoverer(router))

	// ── Start HTTP server ───────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Server.ServerAddr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("🚀 Server listening on %s", cfg.Server.ServerAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// ── Graceful shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("⏳ Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
		return
	}

	log.Println("✅ Server gracefully stopped")
}

// openCatalogSource connects the configured store. Database-backed
// catalogs are seeded from the embedded city list on first start.
func openCatalogSource(ctx context.Context, cfg *config.Config, stores *backends) (service.CatalogSource, error) {
	embedded := repository.NewEmbeddedCatalog()

	switch cfg.Catalog.Source {
	case config.CatalogPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		stores.pg = pool
		log.Println("✓ PostgreSQL connected")

		if err := db.EnsurePostgresSchema(ctx, pool); err != nil {
			return nil, err
		}
		repo := repository.NewCityRepository(pool)
		if err := seed(ctx, embedded, repo); err != nil {
			return nil, err
		}
		return repo, nil

	case config.CatalogSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.Catalog.SQLitePath)
		if err != nil {
			return nil, err
		}
		stores.sqlite = conn
		log.Println("✓ SQLite opened")

		repo := repository.NewSQLiteCityRepository(conn)
		if err := seed(ctx, embedded, repo); err != nil {
			return nil, err
		}
		return repo, nil

	default:
		return embedded, nil
	}
}

type seeder interface {
	SeedIfEmpty(ctx context.Context, cities []model.City) (bool, error)
}

func seed(ctx context.Context, embedded *repository.EmbeddedCatalog, dst seeder) error {
	cities, err := embedded.LoadCities(ctx)
	if err != nil {
		return err
	}
	seeded, err := dst.SeedIfEmpty(ctx, cities)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if seeded {
		log.Printf("[catalog] Seeded %d cities", len(cities))
	}
	return nil
}

// HealthResponse represents the /health endpoint response.
type HealthResponse struct {
	Status   string            `json:"status"`
	Cities   int               `json:"cities"`
	Services map[string]string `json:"services"`
}

// healthHandler reports catalog size and the connectivity of whichever
// stores are in use.
func healthHandler(catalog *service.Catalog, stores *backends) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:   "ok",
			Cities:   catalog.Len(),
			Services: make(map[string]string),
		}

		check := func(name string, enabled bool, ping func(context.Context) error) {
			if !enabled {
				resp.Services[name] = "disabled"
				return
			}
			if err := ping(r.Context()); err != nil {
				resp.Status = "degraded"
				resp.Services[name] = "unhealthy: " + err.Error()
				return
			}
			resp.Services[name] = "healthy"
		}

		check("postgres", stores.pg != nil, func(ctx context.Context) error { return db.HealthCheck(ctx, stores.pg) })
		check("sqlite", stores.sqlite != nil, func(ctx context.Context) error { return stores.sqlite.PingContext(ctx) })
		check("redis", stores.redis != nil, func(ctx context.Context) error { return cache.HealthCheck(ctx, stores.redis) })

		w.Header().Set("Content-Type", "application/json")
		if resp.Status != "ok" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
