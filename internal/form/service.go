package form

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tutorselect/internal/domain"
	"tutorselect/internal/eventbus"
)

// ErrSaveFailed wraps store failures returned by Submit
var ErrSaveFailed = errors.New("failed to save animal")

// Service validates and stores animals, reporting outcomes on the bus
type Service struct {
	store Store
	bus   eventbus.EventBus
	newID func() string
}

// NewService creates a service. bus may be nil.
func NewService(store Store, bus eventbus.EventBus) *Service {
	return &Service{
		store: store,
		bus:   bus,
		newID: uuid.NewString,
	}
}

// Submit validates a and saves it under a fresh id. Validation failures come
// back as ValidationErrors and publish nothing.
func (s *Service) Submit(ctx context.Context, a domain.Animal) (string, error) {
	if err := Validate(a); err != nil {
		return "", err
	}

	rec := Record{ID: s.newID(), Animal: a}
	if err := s.store.Save(ctx, rec); err != nil {
		log.Printf("Form: save of %q failed: %v", a.Name, err)
		s.publish(eventbus.AnimalSaveFailedEvent{Record: a, Err: err})
		return "", fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	log.Printf("Form: saved animal %s (%s)", rec.ID, a.Name)
	s.publish(eventbus.AnimalSavedEvent{ID: rec.ID, Record: a})
	return rec.ID, nil
}

// Records lists what the store holds
func (s *Service) Records(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}

func (s *Service) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
