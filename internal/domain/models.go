package domain

import "strings"

// NoSelection is the value meaning "nothing selected"
const NoSelection = ""

// Option is a single selectable entry. Value is the caller-defined identity,
// Label is the human readable text the user searches.
type Option struct {
	Label string
	Value string
}

// FindByValue returns the option whose value equals value
func FindByValue(options []Option, value string) (Option, bool) {
	if value == NoSelection {
		return Option{}, false
	}
	for _, opt := range options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// FindByLabel returns the first option whose label matches label, ignoring case.
// Duplicate labels resolve to the first one.
func FindByLabel(options []Option, label string) (Option, bool) {
	for _, opt := range options {
		if strings.EqualFold(opt.Label, label) {
			return opt, true
		}
	}
	return Option{}, false
}

// Tutor is a guardian record that animals are registered against
type Tutor struct {
	ID    string `toml:"id" yaml:"id" json:"id"`
	Name  string `toml:"name" yaml:"name" json:"name"`
	CPF   string `toml:"cpf" yaml:"cpf" json:"cpf"`
	Phone string `toml:"phone" yaml:"phone" json:"phone"`
}

// Animal is the record produced by the registration form
type Animal struct {
	TutorID   string  `json:"tutor_id"`
	Name      string  `json:"nome"`
	Species   string  `json:"especie"`
	Breed     string  `json:"raca"`
	BirthDate string  `json:"data_nascimento"` // YYYY-MM-DD
	Sex       string  `json:"sexo"`
	Color     string  `json:"cor"`
	Weight    float64 `json:"peso"`
}
