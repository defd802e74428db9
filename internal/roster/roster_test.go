package roster

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorselect/internal/domain"
	"tutorselect/internal/eventbus"
	"tutorselect/internal/matcher"
)

const tomlRoster = `
[[tutors]]
id = "t1"
name = "Maria Silva"
cpf = "123.456.789-00"
phone = "(11) 98765-4321"

[[tutors]]
id = "t2"
name = "João Souza"
phone = "(21) 91234-5678"
`

const yamlRoster = `
tutors:
  - id: t1
    name: Maria Silva
    phone: (11) 98765-4321
  - id: t2
    name: João Souza
    phone: (21) 91234-5678
`

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadTOMLAndYAML(t *testing.T) {
	for _, path := range []string{
		write(t, "tutors.toml", tomlRoster),
		write(t, "tutors.yaml", yamlRoster),
		write(t, "tutors.YML", yamlRoster),
	} {
		tutors, err := Load(path)
		require.NoError(t, err, path)
		require.Len(t, tutors, 2)
		assert.Equal(t, "Maria Silva", tutors[0].Name)
		assert.Equal(t, "(21) 91234-5678", tutors[1].Phone)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(write(t, "tutors.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(write(t, "bad.toml", "[[tutors]\n"))
	assert.Error(t, err)

	_, err = Load(write(t, "noid.yaml", "tutors:\n  - name: X\n"))
	assert.ErrorContains(t, err, "has no id")

	_, err = Load(write(t, "dup.yaml", "tutors:\n  - id: a\n  - id: a\n"))
	assert.ErrorContains(t, err, "duplicate")
}

func TestSaveRoundTrip(t *testing.T) {
	tutors := []domain.Tutor{{ID: "x", Name: "Ana", Phone: "11 90000-0000"}}
	for _, name := range []string{"r.toml", "r.yaml"} {
		path := filepath.Join(t.TempDir(), "sub", name)
		require.NoError(t, Save(path, tutors))
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, tutors, got)
	}
	assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "r.txt"), tutors), ErrUnsupportedFormat)
}

func TestOptions(t *testing.T) {
	tutors := []domain.Tutor{
		{ID: "t1", Name: "Maria Silva", Phone: "(11) 98765-4321"},
		{ID: "t2", Name: "João Souza", Phone: "(21) 91234-5678"},
	}
	assert.Equal(t, []domain.Option{
		{Label: "Maria Silva - (11) 98765-4321", Value: "t1"},
		{Label: "João Souza - (21) 91234-5678", Value: "t2"},
	}, Options(tutors, ""))
	assert.Empty(t, Options(nil, ""))

	custom := Options(tutors, " | ")
	assert.Equal(t, "Maria Silva | (11) 98765-4321", custom[0].Label)

	// labels and the phone-aware filter agree on the delimiter
	got := matcher.Filter(custom, "2191", matcher.PhoneAware(" | "))
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].Value)
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11987654321", NormalizePhone("(11) 98765-4321"))
	assert.Equal(t, "", NormalizePhone("sem telefone"))
}

func TestLoadAndPublish(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.RosterLoadedEvent, 1)
	bus.Subscribe(eventbus.EventRosterLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.RosterLoadedEvent); ok {
			got <- ev
		}
	})

	path := write(t, "tutors.toml", tomlRoster)
	tutors, err := LoadAndPublish(path, bus)
	require.NoError(t, err)
	assert.Len(t, tutors, 2)

	select {
	case ev := <-got:
		assert.Equal(t, path, ev.Source)
		assert.Equal(t, 2, ev.Count)
	case <-time.After(time.Second):
		t.Fatal("RosterLoadedEvent not published")
	}
}

func TestLoadAndPublishErrors(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	errs := make(chan eventbus.ErrorEvent, 2)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ErrorEvent); ok {
			errs <- ev
		}
	})

	// a missing roster is reported to the caller only
	_, err := LoadAndPublish(filepath.Join(t.TempDir(), "none.toml"), bus)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// a broken roster also reaches the bus
	_, err = LoadAndPublish(write(t, "bad.toml", "[[tutors]]\nname = \"no id\"\n"), bus)
	require.Error(t, err)

	select {
	case ev := <-errs:
		assert.Equal(t, "failed to load roster", ev.Message)
		assert.NotErrorIs(t, ev.Err, os.ErrNotExist)
	case <-time.After(time.Second):
		t.Fatal("ErrorEvent not published for a broken roster")
	}
	select {
	case ev := <-errs:
		t.Fatalf("unexpected second ErrorEvent: %v", ev.Err)
	case <-time.After(100 * time.Millisecond):
	}
}
