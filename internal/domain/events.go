package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoadRequested EventType = "CatalogLoadRequested"
	EventCatalogLoaded        EventType = "CatalogLoaded"
	EventCatalogLoadFailed    EventType = "CatalogLoadFailed"
	EventCatalogChanged       EventType = "CatalogChanged"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
	EventError                EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadRequestedEvent asks the loader to (re)fetch collections
type CatalogLoadRequestedEvent struct {
	Kinds []CollectionKind // Empty means all
}

func (e CatalogLoadRequestedEvent) Type() EventType { return EventCatalogLoadRequested }

// CatalogLoadedEvent carries a freshly decoded collection.
// Exactly one of Products or Projects is set, according to Kind.
type CatalogLoadedEvent struct {
	Kind     CollectionKind
	Source   string
	Products []Product
	Projects []Project
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// CatalogLoadFailedEvent is emitted when a collection could not be fetched or decoded.
// The collection is treated as empty.
type CatalogLoadFailedEvent struct {
	Kind    CollectionKind
	Source  string
	Message string
	Err     error
}

func (e CatalogLoadFailedEvent) Type() EventType { return EventCatalogLoadFailed }

// CatalogChangedEvent is emitted when a watched source changes on disk
type CatalogChangedEvent struct {
	Kind   CollectionKind
	Source string
}

func (e CatalogChangedEvent) Type() EventType { return EventCatalogChanged }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
