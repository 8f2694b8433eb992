package repository

import (
	"context"

	"personas-api/internal/domains/persona/model"
)

// Filter is an equality conjunction over personas columns, straight
// from the query string. Values arrive as text and are coerced to the
// column's type before they reach the database.
type Filter map[string]string

// Repository owns durable CRUD and equality-filter queries over
// personas. Uniqueness of correo_electronico is enforced by the
// database constraint, never pre-checked; violations surface as
// model.ErrCorreoEnUso at commit time.
type Repository interface {
	Create(ctx context.Context, p *model.Persona) (*model.Persona, error)
	GetByID(ctx context.Context, id int64) (*model.Persona, error)
	List(ctx context.Context, filter Filter) ([]*model.Persona, error)
	Update(ctx context.Context, p *model.Persona) (*model.Persona, error)
	Delete(ctx context.Context, id int64) error
}
