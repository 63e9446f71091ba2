package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"terlab/internal/config"
	"terlab/internal/container"
	"terlab/internal/errors"
	"terlab/internal/migration"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the PostgreSQL connection pool and migrates the schema
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeDatabaseError, err), "failed to connect to database")
	}

	db.SetMaxOpenConns(appConfig.Database.MaxOpenConns)
	db.SetMaxIdleConns(appConfig.Database.MaxIdleConns)
	db.SetConnMaxLifetime(appConfig.Database.ConnMaxLifetime)

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	log.Printf("✅ Database schema ready (migration %s)", migrator.Version())

	return db, nil
}

// seedFromFile imports EXCEL_FILE into the seed session at startup
func seedFromFile(ctx context.Context, c *container.Container) {
	path := c.Config.Data.ExcelFile
	f, err := os.Open(path)
	if err != nil {
		log.Printf("⚠️ Seed file %s not readable, skipping import: %v", path, err)
		return
	}
	defer f.Close()

	sess, result, err := c.SessionService.Seed(ctx, c.Config.Data.SeedSession, f, filepath.Base(path))
	if err != nil {
		log.Printf("❌ Seed import from %s failed: %v", path, err)
		return
	}
	log.Printf("📥 Seeded session %q with %d posts from %s", sess.Name, len(result.Posts), path)
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := initDatabase(ctx, appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	if err := appContainer.InitWithDatabase(db); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	if appConfig.Data.ExcelFile != "" {
		seedFromFile(ctx, appContainer)
	}

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("🚀 Performance profiling server starting on :%s", appConfig.Profiling.Port)
			log.Printf("💡 View profiles: go tool pprof -http=:8081 http://localhost:%s/debug/pprof/profile?seconds=30", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("❌ pprof server failed: %v", err)
			}
		}()
	}

	server, err := appContainer.Server()
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	log.Printf("🚀 Starting terlab server on port %s", appConfig.Server.Port)
	if err := server.Run(ctx, ":"+appConfig.Server.Port); err != nil {
		log.Printf("❌ Server stopped: %v", err)
	}
}
