// Package form holds the animal registration rules that the TUI form submits through.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"tutorselect/internal/domain"
)

// DateLayout is the accepted birth date format
const DateLayout = "2006-01-02"

// MinWeight is the smallest accepted weight in kilograms
const MinWeight = 0.1

// Field keys, in form order
const (
	FieldTutor     = "tutor_id"
	FieldName      = "nome"
	FieldSpecies   = "especie"
	FieldBreed     = "raca"
	FieldBirthDate = "data_nascimento"
	FieldSex       = "sexo"
	FieldColor     = "cor"
	FieldWeight    = "peso"
)

// Fields lists the field keys in the order they appear on the form
var Fields = []string{
	FieldTutor, FieldName, FieldSpecies, FieldBreed,
	FieldBirthDate, FieldSex, FieldColor, FieldWeight,
}

// Species are the choices offered for especie
var Species = []string{
	"Cão", "Gato", "Coelho", "Hamster", "Pássaro", "Peixe", "Réptil", "Outro",
}

// Sexes are the choices offered for sexo
var Sexes = []string{"Macho", "Fêmea"}

// ErrInvalidWeight is returned by ParseWeight for text that is not a number
var ErrInvalidWeight = errors.New("invalid weight")

// ValidationErrors maps a field key to its message
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range Fields {
		if msg, ok := v[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks a record against the form rules. It returns nil or a
// ValidationErrors holding every failing field.
func Validate(a domain.Animal) error {
	errs := ValidationErrors{}
	required := []struct {
		field, value, msg string
	}{
		{FieldTutor, a.TutorID, "Selecione um tutor"},
		{FieldName, a.Name, "Nome é obrigatório"},
		{FieldSpecies, a.Species, "Espécie é obrigatória"},
		{FieldBreed, a.Breed, "Raça é obrigatória"},
		{FieldBirthDate, a.BirthDate, "Data de nascimento é obrigatória"},
		{FieldSex, a.Sex, "Sexo é obrigatório"},
		{FieldColor, a.Color, "Cor é obrigatória"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs[r.field] = r.msg
		}
	}

	if _, ok := errs[FieldBirthDate]; !ok {
		if _, err := time.Parse(DateLayout, a.BirthDate); err != nil {
			errs[FieldBirthDate] = "Data de nascimento inválida (use AAAA-MM-DD)"
		}
	}
	if a.Weight < MinWeight {
		errs[FieldWeight] = "Peso deve ser maior que 0"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ParseWeight reads a weight typed by the user. A decimal comma is accepted
// and blank text is zero.
func ParseWeight(s string) (float64, error) {
	s = strings.TrimSpace(strings.Replace(s, ",", ".", 1))
	if s == "" {
		return 0, nil
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeight, s)
	}
	return w, nil
}
