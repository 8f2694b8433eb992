package model

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation messages. The explicit ones reproduce the reference
// behavior; the rest keep the API in a single language.
const (
	msgRequerido     = "Este campo es obligatorio."
	msgNombreFormato = "El nombre debe iniciar con mayúscula y contener solo letras."
	msgNombreCorto   = "El nombre debe tener al menos 3 caracteres."
	msgCategoria     = "Debe ser uno de: A, B, C, D, E, F."
	msgEdadMinima    = "Debe ser mayor de edad"
	msgEdadMaxima    = "No debe ser una persona mayor de edad"
	msgCorreo        = "No es una dirección de correo válida."
	msgURL           = "No es una URL válida."
	msgFechaFormato  = "No es una fecha válida. Formato esperado: AAAA-MM-DD."
	msgFechaFutura   = "La fecha de nacimiento no puede ser futura"
)

// Single or multiple space-separated words, each capitalized then
// lowercase. No digits, no punctuation.
var nombreRegexp = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)*$`)

// PersonaInput is the untyped request body made typed: every field is a
// pointer so an absent key is distinguishable from a zero value. id is
// output-only and has no place here; es_activo is not settable at all.
type PersonaInput struct {
	Nombre            *string `json:"nombre"`
	Apellido          *string `json:"apellido"`
	Categoria         *string `json:"categoria"`
	Edad              *int    `json:"edad"`
	CorreoElectronico *string `json:"correo_electronico"`
	URL               *string `json:"url"`
	FechaNacimiento   *string `json:"fecha_nacimiento"`
}

// Validate checks every supplied field against its ordered rule list.
// With partial=false (create) absent required fields are themselves
// violations; with partial=true (update) absent fields are skipped
// entirely. Each rule runs on its own so a field reports every rule it
// violates, not just the first, and failures across fields are all
// collected before anything is rejected.
func (in *PersonaInput) Validate(partial bool) ValidationErrors {
	errs := ValidationErrors{}

	campos := []struct {
		nombre string
		valor  *string
		reglas []validation.Rule
	}{
		{"nombre", in.Nombre, []validation.Rule{
			validation.Required.Error(msgRequerido),
			validation.Match(nombreRegexp).Error(msgNombreFormato),
			validation.Length(3, 0).Error(msgNombreCorto),
		}},
		{"apellido", in.Apellido, []validation.Rule{
			validation.Required.Error(msgRequerido),
		}},
		{"categoria", in.Categoria, []validation.Rule{
			validation.Required.Error(msgRequerido),
			validation.In("A", "B", "C", "D", "E", "F").Error(msgCategoria),
		}},
		{"correo_electronico", in.CorreoElectronico, []validation.Rule{
			validation.Required.Error(msgRequerido),
			is.Email.Error(msgCorreo),
		}},
		{"url", in.URL, []validation.Rule{
			validation.Required.Error(msgRequerido),
			is.URL.Error(msgURL),
		}},
	}

	for _, campo := range campos {
		if campo.valor == nil {
			if !partial {
				errs.add(campo.nombre, msgRequerido)
			}
			continue
		}
		for _, regla := range campo.reglas {
			if err := validation.Validate(*campo.valor, regla); err != nil {
				errs.add(campo.nombre, err.Error())
			}
		}
	}

	// edad is optional. Both bounds are independent rules so each
	// produces its own message when violated.
	if in.Edad != nil {
		for _, regla := range []validation.Rule{
			validation.By(edadMinima(18)),
			validation.By(edadMaxima(50)),
		} {
			if err := validation.Validate(*in.Edad, regla); err != nil {
				errs.add("edad", err.Error())
			}
		}
	}

	// fecha_nacimiento is optional. The upper bound is today evaluated
	// now, not at process start.
	if in.FechaNacimiento != nil {
		f, err := ParseFecha(*in.FechaNacimiento)
		if err != nil {
			errs.add("fecha_nacimiento", msgFechaFormato)
		} else if err := validation.Validate(f, validation.By(fechaNoFutura(Hoy()))); err != nil {
			errs.add("fecha_nacimiento", err.Error())
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// edadMinima and edadMaxima avoid validation.Min/Max because those skip
// zero values, and an explicit edad of 0 must still be rejected.
func edadMinima(min int) validation.RuleFunc {
	return func(value interface{}) error {
		if value.(int) < min {
			return errors.New(msgEdadMinima)
		}
		return nil
	}
}

func edadMaxima(max int) validation.RuleFunc {
	return func(value interface{}) error {
		if value.(int) > max {
			return errors.New(msgEdadMaxima)
		}
		return nil
	}
}

func fechaNoFutura(hoy Fecha) validation.RuleFunc {
	return func(value interface{}) error {
		if value.(Fecha).After(hoy.Time) {
			return errors.New(msgFechaFutura)
		}
		return nil
	}
}

// ApplyTo overlays the supplied fields onto p. Absent fields leave the
// record untouched; this is a sparse overlay, not a default fill.
// Callers validate first, so a fecha that fails to parse here cannot
// happen; it is ignored rather than panicking.
func (in *PersonaInput) ApplyTo(p *Persona) {
	if in.Nombre != nil {
		p.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		p.Apellido = *in.Apellido
	}
	if in.Categoria != nil {
		p.Categoria = *in.Categoria
	}
	if in.Edad != nil {
		edad := *in.Edad
		p.Edad = &edad
	}
	if in.CorreoElectronico != nil {
		p.CorreoElectronico = *in.CorreoElectronico
	}
	if in.URL != nil {
		p.URL = *in.URL
	}
	if in.FechaNacimiento != nil {
		if f, err := ParseFecha(*in.FechaNacimiento); err == nil {
			p.FechaNacimiento = &f
		}
	}
}
