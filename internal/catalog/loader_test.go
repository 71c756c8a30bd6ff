package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"shardview/internal/domain"
	"shardview/internal/eventbus"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const productsJSON = `[
  {"id": 1, "title": "Weapon Pack", "description": "Modular weapons", "categories": ["art", "tools"], "features": ["LOD baking"]},
  {"id": 2, "title": "Sound Kit", "description": "Foley", "categories": ["audio"]}
]`

const projectsYAML = `
- id: p1
  title: Shard Engine
  technologies: [Go, Vulkan]
  deprecated: "true"
- id: p2
  title: Terrain
  technologies: [Unity]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadAllFromFiles(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(Options{
		Products: writeFile(t, dir, "products.json", productsJSON),
		Projects: "file://" + writeFile(t, dir, "projects.yaml", projectsYAML),
		Logger:   zaptest.NewLogger(t),
	})

	res := loader.LoadAll(context.Background())
	require.Empty(t, res.Errors)
	require.Len(t, res.Products, 2)
	require.Len(t, res.Projects, 2)
	assert.Equal(t, domain.ItemID("1"), res.Products[0].ID)
	assert.True(t, res.Projects[0].IsDeprecated())
	assert.Equal(t, domain.Tags{"Unity"}, res.Projects[1].Technologies)
}

func TestLoadAllFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/products.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(productsJSON))
		case "/Info/data/projects":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte(projectsYAML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	loader := NewLoader(Options{
		Products: srv.URL + "/data/products.json",
		Projects: srv.URL + "/Info/data/projects",
	})

	res := loader.LoadAll(context.Background())
	require.Empty(t, res.Errors)
	assert.Len(t, res.Products, 2)
	assert.Len(t, res.Projects, 2)
}

func TestLoadFailuresDegradeToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/broken.json":
			_, _ = w.Write([]byte(`[{"id": 1,`))
		case "/object.json":
			_, _ = w.Write([]byte(`{"id": 1}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{"server error", srv.URL + "/products.json", ErrBadStatus},
		{"unsupported scheme", "ftp://example.com/products.json", ErrUnsupportedSource},
		{"missing file", filepath.Join(t.TempDir(), "nope.json"), os.ErrNotExist},
		{"empty source", "", ErrNoSource},
		{"malformed json", srv.URL + "/broken.json", nil},
		{"not an array", srv.URL + "/object.json", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(Options{Products: tt.source, Projects: tt.source})
			res := loader.LoadAll(context.Background())

			require.NotNil(t, res.Products)
			require.NotNil(t, res.Projects)
			assert.Empty(t, res.Products)
			assert.Empty(t, res.Projects)
			require.Error(t, res.Errors[domain.KindProducts])
			require.Error(t, res.Errors[domain.KindProjects])
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Errors[domain.KindProducts], tt.wantErr)
			}
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	loader := NewLoader(Options{Products: srv.URL + "/p.json", Timeout: 20 * time.Millisecond})
	_, err := loader.LoadProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Could not load products: request timed out.", FailureMessage(domain.KindProducts, err))
}

func TestReloadPublishesEvents(t *testing.T) {
	bus := eventbus.New(zaptest.NewLogger(t))
	defer bus.Close()

	events := make(chan eventbus.DomainEvent, 4)
	bus.Subscribe(eventbus.EventCatalogLoaded, func(e eventbus.DomainEvent) { events <- e })
	bus.Subscribe(eventbus.EventCatalogLoadFailed, func(e eventbus.DomainEvent) { events <- e })

	dir := t.TempDir()
	loader := NewLoader(Options{
		Products: writeFile(t, dir, "products.json", productsJSON),
		Projects: filepath.Join(dir, "missing.json"),
		Bus:      bus,
	})
	loader.Reload(context.Background())

	var loaded eventbus.CatalogLoadedEvent
	var failed eventbus.CatalogLoadFailedEvent
	for i := 0; i < 2; i++ {
		select {
		case e := <-events:
			switch ev := e.(type) {
			case eventbus.CatalogLoadedEvent:
				loaded = ev
			case eventbus.CatalogLoadFailedEvent:
				failed = ev
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for catalog events")
		}
	}

	assert.Equal(t, domain.KindProducts, loaded.Kind)
	assert.Len(t, loaded.Products, 2)
	assert.Equal(t, domain.KindProjects, failed.Kind)
	assert.Equal(t, "Could not load projects: file not found.", failed.Message)
}

func TestSubscribeServesRequests(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	loaded := make(chan eventbus.CatalogLoadedEvent, 1)
	bus.Subscribe(eventbus.EventCatalogLoaded, func(e eventbus.DomainEvent) {
		loaded <- e.(eventbus.CatalogLoadedEvent)
	})

	loader := NewLoader(Options{
		Products: writeFile(t, t.TempDir(), "products.json", productsJSON),
		Bus:      bus,
	})
	unsubscribe := loader.Subscribe(context.Background())
	defer unsubscribe()

	bus.Publish(eventbus.CatalogLoadRequestedEvent{Kinds: []domain.CollectionKind{domain.KindProducts}})

	select {
	case e := <-loaded:
		assert.Len(t, e.Products, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("load request not served")
	}
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor(".YML"))
	assert.Equal(t, FormatYAML, FormatFor(".yaml"))
	assert.Equal(t, FormatJSON, FormatFor(".json"))
	assert.Equal(t, FormatJSON, FormatFor(""))
}
