// Package roster loads guardian records and turns them into selectable options.
package roster

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"tutorselect/internal/domain"
	"tutorselect/internal/eventbus"
	"tutorselect/internal/matcher"
)

// ErrUnsupportedFormat is returned for roster files that are neither TOML nor YAML
var ErrUnsupportedFormat = errors.New("unsupported roster format")

// file is the on-disk layout shared by the TOML and YAML formats
type file struct {
	Tutors []domain.Tutor `toml:"tutors" yaml:"tutors"`
}

// Load reads tutors from path. The format is picked by extension.
func Load(path string) ([]domain.Tutor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var f file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}

	if err := check(f.Tutors); err != nil {
		return nil, fmt.Errorf("invalid roster %s: %w", path, err)
	}
	return f.Tutors, nil
}

// LoadAndPublish loads the roster and reports the result on the bus.
// A missing file is only logged: callers treat it as an empty roster.
func LoadAndPublish(path string, bus eventbus.EventBus) ([]domain.Tutor, error) {
	tutors, err := Load(path)
	if err != nil {
		log.Printf("Roster: %v", err)
		if bus != nil && !errors.Is(err, os.ErrNotExist) {
			bus.Publish(eventbus.ErrorEvent{Message: "failed to load roster", Err: err})
		}
		return nil, err
	}
	log.Printf("Roster: loaded %d tutors from %s", len(tutors), path)
	if bus != nil {
		bus.Publish(eventbus.RosterLoadedEvent{Source: path, Count: len(tutors)})
	}
	return tutors, nil
}

// Save writes tutors to path in the format its extension names
func Save(path string, tutors []domain.Tutor) error {
	var (
		data []byte
		err  error
	)
	f := file{Tutors: tutors}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(f)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(f)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create roster directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func check(tutors []domain.Tutor) error {
	seen := make(map[string]bool, len(tutors))
	for i, t := range tutors {
		if t.ID == "" {
			return fmt.Errorf("tutor %d has no id", i+1)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate tutor id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Options maps tutors to options labelled "<name><delimiter><phone>".
// An empty delimiter means matcher.DefaultDelimiter.
func Options(tutors []domain.Tutor, delimiter string) []domain.Option {
	if delimiter == "" {
		delimiter = matcher.DefaultDelimiter
	}
	opts := make([]domain.Option, 0, len(tutors))
	for _, t := range tutors {
		opts = append(opts, domain.Option{
			Label: t.Name + delimiter + t.Phone,
			Value: t.ID,
		})
	}
	return opts
}

// NormalizePhone keeps only the digits of s
func NormalizePhone(s string) string {
	return matcher.Digits(s)
}
