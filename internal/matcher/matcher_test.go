package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorselect/internal/domain"
)

var tutors = []domain.Option{
	{Label: "Ana Silva - 11999990000", Value: "1"},
	{Label: "Bruno Souza - 11888880000", Value: "2"},
}

func TestDefault(t *testing.T) {
	tests := []struct {
		name  string
		label string
		query string
		want  int
	}{
		{"substring", "Ana Silva - 11999990000", "ana", 1},
		{"substring mixed case", "Ana Silva - 11999990000", "SILVA", 1},
		{"digit prefix", "Ana Silva - 11999990000", "119", 1},
		{"formatted phone query", "Ana Silva - (11) 99999-0000", "(11) 9999", 1},
		{"no match", "Ana Silva - 11999990000", "xyz", 0},
		{"digits not at prefix", "Ana Silva - 11999990000", "999", 1},
		{"digits not contained", "Ana Silva - 11999990000", "555", 0},
		{"empty query", "Ana Silva - 11999990000", "", 1},
		{"empty label", "", "a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Default(tt.label, tt.query))
		})
	}
}

func TestDefaultQueryWithoutDigitsIsTextOnly(t *testing.T) {
	assert.Equal(t, 0, Default("Ana Silva - 11999990000", "zz"))
	assert.Equal(t, 0, Default("Ana Silva - 11999990000", "-x-"))
	assert.Equal(t, 0, Default("Ana Silva", "zz1"))
	assert.Equal(t, 1, Default("Ana Silva - 11999990000", "zz1"), "digits of the query still match the phone")
}

func TestPhoneAware(t *testing.T) {
	fn := PhoneAware(DefaultDelimiter)

	assert.Equal(t, 1, fn("Bruno Souza - 11888880000", "118"))
	assert.Equal(t, 0, fn("Ana Silva - 11999990000", "118"))
	assert.Equal(t, 1, fn("Ana Silva - 11999990000", "an"))
	assert.Equal(t, 1, fn("Ana Silva - 11999990000", "AN"))
	assert.Equal(t, 0, fn("Bruno Souza - 11888880000", "an"))
	assert.Equal(t, 0, fn("Ana Silva - 11999990000", "silva"), "name is matched by prefix only")
	assert.Equal(t, 0, fn("Ana Silva", "11"), "label without phone segment")
	assert.Equal(t, 1, fn("Ana Silva - (11) 99999-0000", "1199"))
	assert.Equal(t, 1, fn("Ana Silva - 11999990000", ""))
}

func TestPhoneAwareDefaultsDelimiter(t *testing.T) {
	fn := PhoneAware("")
	assert.Equal(t, 1, fn("Bruno Souza - 11888880000", "1188"))
}

func TestFilterSubsetLaw(t *testing.T) {
	options := []domain.Option{
		{Label: "Carla", Value: "c"},
		{Label: "Ana", Value: "a"},
		{Label: "Mariana", Value: "m"},
		{Label: "Bruno", Value: "b"},
	}

	for _, q := range []string{"", "an", "a", "zzz1", "ru", "x"} {
		got := Filter(options, q, nil)

		// every result scores > 0
		for _, opt := range got {
			assert.Positive(t, Default(opt.Label, q), "query %q returned excluded option %q", q, opt.Label)
		}

		// results keep their original relative order
		pos := -1
		for _, opt := range got {
			idx := indexOf(options, opt.Value)
			require.GreaterOrEqual(t, idx, 0)
			assert.Greater(t, idx, pos, "query %q broke original order", q)
			pos = idx
		}

		// nothing that scores > 0 is dropped
		want := 0
		for _, opt := range options {
			if Default(opt.Label, q) > 0 {
				want++
			}
		}
		assert.Len(t, got, want)
	}
}

func TestFilterEndToEndScenario(t *testing.T) {
	fn := PhoneAware(DefaultDelimiter)

	got := Filter(tutors, "118", fn)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].Value)

	got = Filter(tutors, "an", fn)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Value)
}

func TestFilterEmptyOptions(t *testing.T) {
	assert.Empty(t, Filter(nil, "a", nil))
}

func TestRank(t *testing.T) {
	options := []domain.Option{
		{Label: "Mariana", Value: "m"},
		{Label: "Ana", Value: "a"},
		{Label: "Bruno", Value: "b"},
		{Label: "Anabela", Value: "ab"},
	}

	got := Rank(options, "an", Fuzzy)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Value)
	assert.Equal(t, "ab", got[1].Value)
	assert.Equal(t, "m", got[2].Value)

	// binary scorers rank exactly like Filter
	assert.Equal(t, Filter(options, "an", nil), Rank(options, "an", nil))
}

func TestFuzzyScoresTighterMatchesHigher(t *testing.T) {
	exact := Fuzzy("Ana", "an")
	longer := Fuzzy("Anabela", "an")
	inner := Fuzzy("Mariana", "an")

	assert.Greater(t, exact, longer)
	assert.Greater(t, longer, inner)
	assert.GreaterOrEqual(t, inner, 1)
	assert.Equal(t, 1, Fuzzy("Ana", ""))
	assert.Equal(t, 0, Fuzzy("Ana", "xyz"))
}

func TestFuzzyKeepsDefaultInclusion(t *testing.T) {
	for _, opt := range tutors {
		for _, q := range []string{"", "ana", "119", "xyz", "souza"} {
			assert.Equal(t, Default(opt.Label, q) > 0, Fuzzy(opt.Label, q) > 0)
		}
	}
}

func TestDigitsAndIsNumeric(t *testing.T) {
	assert.Equal(t, "11999990000", Digits("(11) 99999-0000"))
	assert.Equal(t, "", Digits("Ana"))
	assert.True(t, IsNumeric("118"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("11 8"))
	assert.False(t, IsNumeric("١٢"))
}

func indexOf(options []domain.Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}
