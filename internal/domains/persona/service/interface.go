package service

import (
	"context"

	"personas-api/internal/domains/persona/model"
	"personas-api/internal/domains/persona/repository"
)

// Service orchestrates validated input against the store. Handlers
// validate before calling in, so inputs arriving here are well-typed;
// the store still owns uniqueness and existence failures.
type Service interface {
	Create(ctx context.Context, input *model.PersonaInput) (*model.Persona, error)
	GetByID(ctx context.Context, id int64) (*model.Persona, error)
	List(ctx context.Context, filter repository.Filter) ([]*model.Persona, error)
	Update(ctx context.Context, id int64, input *model.PersonaInput) (*model.Persona, error)
	Delete(ctx context.Context, id int64) error
}
