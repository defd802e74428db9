package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorselect/internal/eventbus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, 100, cfg.UISettings.CompactBreakpoint)
	assert.Equal(t, "Selecione o tutor", cfg.UISettings.Placeholder)
	assert.Equal(t, " - ", cfg.UISettings.PhoneDelimiter)
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	svc := NewConfigServiceForPath(path)

	cfg := DefaultConfig()
	cfg.RosterPath = "/data/tutors.yaml"
	cfg.UISettings.CompactBreakpoint = 90
	cfg.UISettings.Mouse = false
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	svc := NewConfigServiceForPath(filepath.Join(t.TempDir(), FileName))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = svc.LoadFromPath(svc.Path())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`version = 1
roster_path = "tutors.yaml"

[ui]
compact_breakpoint = 72
`), 0644))

	cfg, err := NewConfigServiceForPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "tutors.yaml", cfg.RosterPath)
	assert.Equal(t, 72, cfg.UISettings.CompactBreakpoint)
	assert.Equal(t, "Nenhum tutor encontrado.", cfg.UISettings.EmptyPlaceholder)
	assert.True(t, cfg.UISettings.Mouse)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"syntax.toml":   "version = ",
		"unknown.toml":  "version = 1\ncolour = \"red\"\n",
		"version.toml":  "version = 2\n",
		"negative.toml": "version = 1\n[ui]\ncompact_breakpoint = -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			_, err := NewConfigServiceForPath(path).Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	got := make(chan eventbus.ConfigLoadedEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
			got <- ev
		}
	})

	path := filepath.Join(t.TempDir(), FileName)
	svc := WithBus(NewConfigServiceForPath(path), bus)
	_, err := svc.Load()
	require.NoError(t, err)

	select {
	case ev := <-got:
		assert.Equal(t, path, ev.Path)
	case <-time.After(time.Second):
		t.Fatal("ConfigLoadedEvent not published")
	}
}
