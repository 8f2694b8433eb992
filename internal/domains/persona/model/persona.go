package model

import (
	"fmt"
	"strconv"
	"time"
)

const fechaLayout = "2006-01-02"

// Fecha is a calendar date without a time-of-day component.
// The API speaks YYYY-MM-DD on the wire, never RFC 3339 timestamps.
type Fecha struct {
	time.Time
}

func NewFecha(t time.Time) Fecha {
	return Fecha{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Hoy returns today's date. Evaluated at call time, not process start,
// so each validation sees the current day.
func Hoy() Fecha {
	return NewFecha(time.Now())
}

func ParseFecha(s string) (Fecha, error) {
	t, err := time.Parse(fechaLayout, s)
	if err != nil {
		return Fecha{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewFecha(t), nil
}

func (f Fecha) String() string {
	return f.Format(fechaLayout)
}

func (f Fecha) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(f.Format(fechaLayout))), nil
}

func (f *Fecha) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid date value: %s", data)
	}
	parsed, err := ParseFecha(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Persona is the stored entity. JSON keys match the personas table
// columns one to one. EsActivo is dump-only: it is serialized on every
// response but never accepted on input (write-once at creation, the
// database default fills it in).
type Persona struct {
	ID                int64  `json:"id" db:"id"`
	Nombre            string `json:"nombre" db:"nombre"`
	Apellido          string `json:"apellido" db:"apellido"`
	Categoria         string `json:"categoria" db:"categoria"`
	Edad              *int   `json:"edad" db:"edad"`
	CorreoElectronico string `json:"correo_electronico" db:"correo_electronico"`
	URL               string `json:"url" db:"url"`
	FechaNacimiento   *Fecha `json:"fecha_nacimiento" db:"fecha_nacimiento"`
	EsActivo          bool   `json:"es_activo" db:"es_activo"`
}
