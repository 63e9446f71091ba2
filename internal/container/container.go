package container

import (
	"context"
	"fmt"
	"log"

	"terlab/adapters/excel"
	"terlab/adapters/postgres"
	"terlab/app"
	"terlab/internal/config"
	"terlab/ports"
	"terlab/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	SessionRepo ports.SessionRepository
	PostRepo    ports.PostRepository

	// Import
	Reader *excel.DataReader

	// Services
	SessionService  *app.SessionService
	PostService     *app.PostService
	AnalysisService *app.AnalysisService
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Reader: excel.NewDataReader(excel.DefaultImportConfig()),
	}

	return c, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	// Test database connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.initRepositories()
	c.initServices()

	log.Printf("[Container] Initialized with database connection")
	return nil
}

// initRepositories initializes data access repositories
func (c *Container) initRepositories() {
	c.SessionRepo = postgres.NewSessionRepository(c.DB)
	c.PostRepo = postgres.NewPostRepository(c.DB)
}

// initServices wires application services onto the repositories
func (c *Container) initServices() {
	c.SessionService = app.NewSessionService(c.SessionRepo, c.PostRepo, c.Reader)
	c.PostService = app.NewPostService(c.PostRepo)
	c.AnalysisService = app.NewAnalysisService(c.SessionRepo, c.PostRepo)
}

// Server builds the HTTP API over the initialized services
func (c *Container) Server() (*ui.Server, error) {
	if c.SessionService == nil {
		return nil, fmt.Errorf("container not initialized with a database")
	}
	return ui.NewServer(c.SessionService, c.PostService, c.AnalysisService, c.Config.Server.MaxUploadMB), nil
}

// Shutdown releases resources held by the container
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB == nil {
		return nil
	}
	log.Printf("[Container] Closing database connection")
	return c.DB.Close()
}
