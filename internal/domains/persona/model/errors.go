package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Repository-level errors
var (
	ErrPersonaNotFound = errors.New("persona no encontrada")
	ErrCorreoEnUso     = errors.New("el correo electrónico ya está registrado")
)

// FilterError reports a list filter the store cannot execute: either a
// key that is not a column of personas, or a value that cannot be
// coerced to the column's type.
type FilterError struct {
	Campo  string
	Motivo string
}

func (e *FilterError) Error() string {
	if e.Motivo != "" {
		return fmt.Sprintf("valor de filtro no válido para %q: %s", e.Campo, e.Motivo)
	}
	return fmt.Sprintf("campo de filtro desconocido: %q", e.Campo)
}

func NewUnknownFilterField(campo string) *FilterError {
	return &FilterError{Campo: campo}
}

func NewBadFilterValue(campo, motivo string) *FilterError {
	return &FilterError{Campo: campo, Motivo: motivo}
}

// ValidationErrors maps a field name to every message its rules
// produced. The map is the 400 response body verbatim; a request is
// never partially applied.
type ValidationErrors map[string][]string

func (v ValidationErrors) add(campo, mensaje string) {
	v[campo] = append(v[campo], mensaje)
}

func (v ValidationErrors) Error() string {
	campos := make([]string, 0, len(v))
	for campo := range v {
		campos = append(campos, campo)
	}
	sort.Strings(campos)

	var b strings.Builder
	for i, campo := range campos {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", campo, strings.Join(v[campo], ", "))
	}
	return b.String()
}
