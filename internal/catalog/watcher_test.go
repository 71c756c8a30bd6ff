package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"shardview/internal/domain"
	"shardview/internal/eventbus"
)

func TestFilePath(t *testing.T) {
	tests := []struct {
		source string
		want   string
		ok     bool
	}{
		{"data/products.json", "data/products.json", true},
		{"file:///srv/data/projects.yaml", "/srv/data/projects.yaml", true},
		{"https://example.com/data/products.json", "", false},
		{"HTTP://example.com/p.json", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := FilePath(tt.source)
		assert.Equal(t, tt.ok, ok, tt.source)
		assert.Equal(t, tt.want, got, tt.source)
	}
}

func TestWatcherPublishesDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	products := writeFile(t, dir, "products.json", productsJSON)
	writeFile(t, dir, "unrelated.txt", "x")

	bus := eventbus.New(zaptest.NewLogger(t))
	defer bus.Close()

	changed := make(chan eventbus.CatalogChangedEvent, 8)
	bus.Subscribe(eventbus.EventCatalogChanged, func(e eventbus.DomainEvent) {
		changed <- e.(eventbus.CatalogChangedEvent)
	})

	w, err := NewWatcher(map[domain.CollectionKind]string{
		domain.KindProducts: products,
		domain.KindProjects: "https://example.com/projects.json",
	}, bus, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.Equal(t, 1, w.Watched())
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("y"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(products, []byte(productsJSON), 0o644))
	}

	select {
	case e := <-changed:
		assert.Equal(t, domain.KindProducts, e.Kind)
	case <-time.After(3 * time.Second):
		t.Fatal("no change event")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherSkipsMissingDirectory(t *testing.T) {
	w, err := NewWatcher(map[domain.CollectionKind]string{
		domain.KindProducts: filepath.Join(t.TempDir(), "gone", "products.json"),
	}, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
}

func TestWatcherStopsBeforeWaitReturns(t *testing.T) {
	earlier := goleak.IgnoreCurrent()
	dir := t.TempDir()
	products := writeFile(t, dir, "products.json", productsJSON)

	w, err := NewWatcher(map[domain.CollectionKind]string{domain.KindProducts: products}, nil, zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var background errgroup.Group
	background.Go(func() error { return w.Run(ctx) })

	cancel()
	require.NoError(t, background.Wait())
	// fsnotify's reader goroutine is gone once Run has returned
	goleak.VerifyNone(t, earlier)
}
