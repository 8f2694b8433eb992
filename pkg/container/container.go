package container

import (
	"context"
	"fmt"
	"time"

	"personas-api/internal/config"
	personaHandler "personas-api/internal/domains/persona/handler"
	personaRepo "personas-api/internal/domains/persona/repository"
	personaService "personas-api/internal/domains/persona/service"
	"personas-api/internal/infrastructure/database"
	"personas-api/pkg/logger"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton wired once at startup: config → database → repository →
// service → handler. The datastore handle is passed down explicitly;
// no layer reaches for process-wide state.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	PersonaRepo    personaRepo.Repository
	PersonaService personaService.Service
	PersonaHandler *personaHandler.PersonaHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)

	db := database.NewPostgresDB(&cfg.Database)

	connectCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	c.PersonaRepo = personaRepo.NewPostgresRepository(db.Pool)
	c.PersonaService = personaService.NewPersonaService(c.PersonaRepo)
	c.PersonaHandler = personaHandler.NewPersonaHandler(c.PersonaService)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
