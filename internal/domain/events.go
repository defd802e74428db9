package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventRosterLoaded     EventType = "RosterLoaded"
	EventAnimalSaved      EventType = "AnimalSaved"
	EventAnimalSaveFailed EventType = "AnimalSaveFailed"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted when a selector reports a new value
type SelectionChangedEvent struct {
	Field    string
	Previous string
	Current  string
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// RosterLoadedEvent is emitted once the tutor roster has been read
type RosterLoadedEvent struct {
	Source string
	Count  int
}

func (e RosterLoadedEvent) Type() EventType { return EventRosterLoaded }

// AnimalSavedEvent is emitted after a record has been stored
type AnimalSavedEvent struct {
	ID     string
	Record Animal
}

func (e AnimalSavedEvent) Type() EventType { return EventAnimalSaved }

// AnimalSaveFailedEvent is emitted when storing a record fails
type AnimalSaveFailedEvent struct {
	Record Animal
	Err    error
}

func (e AnimalSaveFailedEvent) Type() EventType { return EventAnimalSaveFailed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path       string
	RosterPath string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
