package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/configa/pkg/configa"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCurrentBeforeReload(t *testing.T) {
	t.Parallel()

	store := NewSnapshotStorage("unused.conf", zaptest.NewLogger(t))
	if _, err := store.Current(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if store.Path() != "unused.conf" {
		t.Fatalf("unexpected path %s", store.Path())
	}
}

func TestReloadSwapsSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.conf")
	writeFile(t, path, "[first]\nkey = one\n")

	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	store := NewSnapshotStorage(path, zaptest.NewLogger(t), WithClock(func() time.Time { return now }))

	first, err := store.Reload()
	if err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}
	if !first.ParsedAt.Equal(now) {
		t.Fatalf("expected ParsedAt %s, got %s", now, first.ParsedAt)
	}

	writeFile(t, path, "[second]\nkey = two\n")
	now = now.Add(time.Minute)
	if _, err := store.Reload(); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	current, err := store.Current()
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if !current.Config.HasSection("second") || current.Config.HasSection("first") {
		t.Fatalf("expected the second file contents, got %v", current.Config.Sections())
	}
	if !first.Config.HasSection("first") {
		t.Fatalf("expected earlier snapshot to remain unchanged")
	}
}

func TestReloadFailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.conf")
	writeFile(t, path, "[kept]\nkey = value\n")

	store := NewSnapshotStorage(path, zaptest.NewLogger(t))
	if _, err := store.Reload(); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Reload(); err == nil {
		t.Fatalf("expected reload of a missing file to fail")
	}

	current, err := store.Current()
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	value, found, err := current.Config.ParseScalar("kept", "key", configa.ScalarOptions{Required: true})
	if err != nil || !found || value.String() != "value" {
		t.Fatalf("expected previous snapshot, got %v %v %v", value, found, err)
	}
}

func TestSnapshotStorageConcurrentAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.conf")
	writeFile(t, path, "[section]\nkey = value\n")

	store := NewSnapshotStorage(path, zaptest.NewLogger(t))
	if _, err := store.Reload(); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			if _, err := store.Reload(); err != nil {
				t.Errorf("Reload failed: %v", err)
			}
		}()

		go func() {
			defer wg.Done()
			snap, err := store.Current()
			if err != nil {
				t.Errorf("Current failed: %v", err)
				return
			}
			if _, _, err := snap.Config.ParseScalar("section", "key", configa.ScalarOptions{Required: true}); err != nil {
				t.Errorf("ParseScalar failed: %v", err)
			}
		}()
	}

	wg.Wait()
}
