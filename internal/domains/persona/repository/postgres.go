package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"personas-api/internal/domains/persona/model"
)

const personaColumns = `id, nombre, apellido, categoria, edad, correo_electronico, url, fecha_nacimiento, es_activo`

// postgresRepository implements Repository on a pgx connection pool.
// The pool is injected from the container; there is no package-level
// database state.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// Create inserts a new persona. id and es_activo come back from the
// database (serial and DEFAULT TRUE respectively).
func (r *postgresRepository) Create(ctx context.Context, p *model.Persona) (*model.Persona, error) {
	query := `
		INSERT INTO personas (nombre, apellido, categoria, edad, correo_electronico, url, fecha_nacimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + personaColumns

	row := r.pool.QueryRow(ctx, query,
		p.Nombre,
		p.Apellido,
		p.Categoria,
		p.Edad,
		p.CorreoElectronico,
		p.URL,
		fechaArg(p.FechaNacimiento),
	)

	created, err := scanPersona(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrCorreoEnUso
		}
		return nil, fmt.Errorf("failed to create persona: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Persona, error) {
	query := `SELECT ` + personaColumns + ` FROM personas WHERE id = $1`

	p, err := scanPersona(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPersonaNotFound
		}
		return nil, fmt.Errorf("failed to get persona by id: %w", err)
	}
	return p, nil
}

// List returns every persona matching the filter, ordered by id so
// results are deterministic. An empty filter returns the whole table.
func (r *postgresRepository) List(ctx context.Context, filter Filter) ([]*model.Persona, error) {
	where, args, err := buildFilter(filter)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + personaColumns + ` FROM personas` + where + ` ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	defer rows.Close()

	personas := make([]*model.Persona, 0)
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona row: %w", err)
		}
		personas = append(personas, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating persona rows: %w", err)
	}

	return personas, nil
}

// Update persists the merged record. es_activo is write-once and never
// part of the SET list.
func (r *postgresRepository) Update(ctx context.Context, p *model.Persona) (*model.Persona, error) {
	query := `
		UPDATE personas
		SET nombre = $1, apellido = $2, categoria = $3, edad = $4,
		    correo_electronico = $5, url = $6, fecha_nacimiento = $7
		WHERE id = $8
		RETURNING ` + personaColumns

	row := r.pool.QueryRow(ctx, query,
		p.Nombre,
		p.Apellido,
		p.Categoria,
		p.Edad,
		p.CorreoElectronico,
		p.URL,
		fechaArg(p.FechaNacimiento),
		p.ID,
	)

	updated, err := scanPersona(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPersonaNotFound
		}
		if isUniqueViolation(err) {
			return nil, model.ErrCorreoEnUso
		}
		return nil, fmt.Errorf("failed to update persona: %w", err)
	}
	return updated, nil
}

// Delete removes the record permanently. Deleting an id that is already
// gone reports not-found, it does not succeed silently.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM personas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.ErrPersonaNotFound
	}

	return nil
}

// ---------------------------------------------------------------------
// filter building
// ---------------------------------------------------------------------

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindBool
	kindDate
)

// filterColumns whitelists the queryable columns. Anything else in the
// query string is rejected before a single byte reaches Postgres.
var filterColumns = map[string]columnKind{
	"id":                 kindInt,
	"nombre":             kindText,
	"apellido":           kindText,
	"categoria":          kindText,
	"edad":               kindInt,
	"correo_electronico": kindText,
	"url":                kindText,
	"fecha_nacimiento":   kindDate,
	"es_activo":          kindBool,
}

// buildFilter turns the filter into a WHERE clause of ANDed equality
// comparisons. Keys are sorted so the generated SQL is stable.
func buildFilter(filter Filter) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}

	campos := make([]string, 0, len(filter))
	for campo := range filter {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	clauses := make([]string, 0, len(campos))
	args := make([]any, 0, len(campos))

	for _, campo := range campos {
		kind, ok := filterColumns[campo]
		if !ok {
			return "", nil, model.NewUnknownFilterField(campo)
		}

		arg, err := coerceFilterValue(kind, filter[campo])
		if err != nil {
			return "", nil, model.NewBadFilterValue(campo, filter[campo])
		}

		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", campo, len(args)))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func coerceFilterValue(kind columnKind, value string) (any, error) {
	switch kind {
	case kindInt:
		return strconv.ParseInt(value, 10, 64)
	case kindBool:
		return strconv.ParseBool(value)
	case kindDate:
		f, err := model.ParseFecha(value)
		if err != nil {
			return nil, err
		}
		return f.Time, nil
	default:
		return value, nil
	}
}

// ---------------------------------------------------------------------
// row scanning
// ---------------------------------------------------------------------

func scanPersona(row pgx.Row) (*model.Persona, error) {
	var p model.Persona
	var fecha *time.Time

	err := row.Scan(
		&p.ID,
		&p.Nombre,
		&p.Apellido,
		&p.Categoria,
		&p.Edad,
		&p.CorreoElectronico,
		&p.URL,
		&fecha,
		&p.EsActivo,
	)
	if err != nil {
		return nil, err
	}

	if fecha != nil {
		f := model.NewFecha(*fecha)
		p.FechaNacimiento = &f
	}

	return &p, nil
}

func fechaArg(f *model.Fecha) *time.Time {
	if f == nil {
		return nil
	}
	return &f.Time
}

// isUniqueViolation reports whether err is SQLSTATE 23505, the unique
// constraint on correo_electronico being the only one in the schema.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
