// Package catalog fetches the product and project collections from URLs or
// files. Any failure degrades to an empty collection plus a message.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"shardview/internal/domain"
	"shardview/internal/eventbus"
)

var (
	// ErrUnsupportedSource is returned for sources that are neither http(s) nor files
	ErrUnsupportedSource = errors.New("unsupported catalog source")
	// ErrBadStatus is returned for non-2xx responses
	ErrBadStatus = errors.New("unexpected response status")
	// ErrNoSource is returned when a collection has no configured source
	ErrNoSource = errors.New("no source configured")
)

// maxBodySize caps how much of a source is read
const maxBodySize = 16 << 20

// DefaultTimeout bounds a single fetch when none is configured
const DefaultTimeout = 10 * time.Second

// Format is the encoding of a source
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// Options configures a Loader
type Options struct {
	Products string
	Projects string
	Client   *http.Client
	Timeout  time.Duration
	Bus      eventbus.EventBus
	Logger   *zap.Logger
}

// Loader fetches collections and publishes the outcome on the event bus
type Loader struct {
	mu      sync.RWMutex
	sources map[domain.CollectionKind]string

	client  *http.Client
	timeout time.Duration
	bus     eventbus.EventBus
	logger  *zap.Logger
}

// Result holds both collections. Failed collections are empty and have an
// entry in Errors.
type Result struct {
	Products []domain.Product
	Projects []domain.Project
	Errors   map[domain.CollectionKind]error
}

// NewLoader creates a loader for the given sources
func NewLoader(opts Options) *Loader {
	client := opts.Client
	if client == nil {
		client = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		sources: map[domain.CollectionKind]string{
			domain.KindProducts: opts.Products,
			domain.KindProjects: opts.Projects,
		},
		client:  client,
		timeout: timeout,
		bus:     opts.Bus,
		logger:  logger.Named("catalog"),
	}
}

// Source returns the configured source of a collection
func (l *Loader) Source(kind domain.CollectionKind) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sources[kind]
}

// Kinds lists collections in a fixed order
func Kinds() []domain.CollectionKind {
	return []domain.CollectionKind{domain.KindProducts, domain.KindProjects}
}

// LoadAll fetches both collections concurrently. It never fails: a
// collection that cannot be loaded is empty and its error is recorded.
func (l *Loader) LoadAll(ctx context.Context) Result {
	res := Result{
		Products: []domain.Product{},
		Projects: []domain.Project{},
		Errors:   make(map[domain.CollectionKind]error),
	}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := l.LoadProducts(gctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			res.Errors[domain.KindProducts] = err
			return nil
		}
		res.Products = products
		return nil
	})
	g.Go(func() error {
		projects, err := l.LoadProjects(gctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			res.Errors[domain.KindProjects] = err
			return nil
		}
		res.Projects = projects
		return nil
	})
	_ = g.Wait()

	return res
}

// LoadProducts fetches and decodes the product collection
func (l *Loader) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return load[domain.Product](ctx, l, l.Source(domain.KindProducts))
}

// LoadProjects fetches and decodes the project collection
func (l *Loader) LoadProjects(ctx context.Context) ([]domain.Project, error) {
	return load[domain.Project](ctx, l, l.Source(domain.KindProjects))
}

func load[T any](ctx context.Context, l *Loader, source string) ([]T, error) {
	data, format, err := l.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	items, err := Decode[T](data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", source, err)
	}
	return items, nil
}

// Reload fetches the given collections (all when none are given) and
// publishes CatalogLoadedEvent or CatalogLoadFailedEvent for each
func (l *Loader) Reload(ctx context.Context, kinds ...domain.CollectionKind) {
	if len(kinds) == 0 {
		kinds = Kinds()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		g.Go(func() error {
			l.reloadOne(gctx, kind)
			return nil
		})
	}
	_ = g.Wait()
}

func (l *Loader) reloadOne(ctx context.Context, kind domain.CollectionKind) {
	source := l.Source(kind)
	start := time.Now()

	var (
		event eventbus.DomainEvent
		err   error
	)
	switch kind {
	case domain.KindProducts:
		var products []domain.Product
		products, err = l.LoadProducts(ctx)
		event = eventbus.CatalogLoadedEvent{Kind: kind, Source: source, Products: nonNil(products)}
	case domain.KindProjects:
		var projects []domain.Project
		projects, err = l.LoadProjects(ctx)
		event = eventbus.CatalogLoadedEvent{Kind: kind, Source: source, Projects: nonNil(projects)}
	default:
		err = fmt.Errorf("unknown collection %q", kind)
	}

	if err != nil {
		l.logger.Warn("catalog load failed",
			zap.String("kind", string(kind)),
			zap.String("source", source),
			zap.Error(err))
		event = eventbus.CatalogLoadFailedEvent{
			Kind:    kind,
			Source:  source,
			Message: FailureMessage(kind, err),
			Err:     err,
		}
	} else {
		l.logger.Info("catalog loaded",
			zap.String("kind", string(kind)),
			zap.String("source", source),
			zap.Duration("took", time.Since(start)))
	}

	if l.bus != nil {
		l.bus.Publish(event)
	}
}

// Subscribe makes the loader serve CatalogLoadRequested and CatalogChanged
// events until ctx is done or the returned function is called
func (l *Loader) Subscribe(ctx context.Context) func() {
	if l.bus == nil {
		return func() {}
	}
	unsubRequested := l.bus.Subscribe(eventbus.EventCatalogLoadRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CatalogLoadRequestedEvent); ok {
			l.Reload(ctx, event.Kinds...)
		}
	})
	unsubChanged := l.bus.Subscribe(eventbus.EventCatalogChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CatalogChangedEvent); ok {
			l.Reload(ctx, event.Kind)
		}
	})
	return func() {
		unsubRequested()
		unsubChanged()
	}
}

// Fetch reads a source and reports its format
func (l *Loader) Fetch(ctx context.Context, source string) ([]byte, Format, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, FormatJSON, ErrNoSource
	}

	u, err := url.Parse(source)
	if err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l.fetchHTTP(ctx, source, u)
		case "file":
			return l.fetchFile(u.Path)
		default:
			return nil, FormatJSON, fmt.Errorf("%w: %s", ErrUnsupportedSource, source)
		}
	}
	// Plain paths, including Windows drive letters
	return l.fetchFile(source)
}

func (l *Loader) fetchHTTP(ctx context.Context, source string, u *url.URL) ([]byte, Format, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, FormatJSON, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, FormatJSON, fmt.Errorf("failed to fetch %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, FormatJSON, fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, source)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, FormatJSON, fmt.Errorf("failed to read %s: %w", source, err)
	}

	format := FormatFor(path.Ext(u.Path))
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "yaml") {
		format = FormatYAML
	}
	return data, format, nil
}

func (l *Loader) fetchFile(name string) ([]byte, Format, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, FormatJSON, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBodySize))
	if err != nil {
		return nil, FormatJSON, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, FormatFor(filepath.Ext(name)), nil
}

// FormatFor picks a format from a file extension
func FormatFor(ext string) Format {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a collection. The top level must be a sequence.
func Decode[T any](data []byte, format Format) ([]T, error) {
	var items []T
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	}
	return nonNil(items), nil
}

// FailureMessage is the user-visible text for a failed collection
func FailureMessage(kind domain.CollectionKind, err error) string {
	switch {
	case errors.Is(err, ErrNoSource):
		return fmt.Sprintf("No %s source configured.", kind)
	case errors.Is(err, ErrBadStatus):
		return fmt.Sprintf("Could not load %s: the server returned an error.", kind)
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("Could not load %s: file not found.", kind)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("Could not load %s: request timed out.", kind)
	default:
		return fmt.Sprintf("Could not load %s.", kind)
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
