package service

import (
	"context"

	"personas-api/internal/domains/persona/model"
	"personas-api/internal/domains/persona/repository"
)

type personaService struct {
	repo repository.Repository
}

func NewPersonaService(repo repository.Repository) Service {
	return &personaService{repo: repo}
}

func (s *personaService) Create(ctx context.Context, input *model.PersonaInput) (*model.Persona, error) {
	var p model.Persona
	input.ApplyTo(&p)
	return s.repo.Create(ctx, &p)
}

func (s *personaService) GetByID(ctx context.Context, id int64) (*model.Persona, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *personaService) List(ctx context.Context, filter repository.Filter) ([]*model.Persona, error) {
	return s.repo.List(ctx, filter)
}

// Update looks the record up first so a missing id fails before any
// mutation, then overlays only the supplied fields and persists the
// merged record.
func (s *personaService) Update(ctx context.Context, id int64, input *model.PersonaInput) (*model.Persona, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.ApplyTo(existing)
	return s.repo.Update(ctx, existing)
}

func (s *personaService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
