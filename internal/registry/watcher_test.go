package registry

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := writeCatalog(t, testCatalog)
	reg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(reg, nil)
	go func() {
		if err := w.Run(ctx); err != nil {
			t.Errorf("watcher Run() error: %v", err)
		}
	}()

	// Give the watcher a moment to register.
	time.Sleep(200 * time.Millisecond)

	updated := testCatalog + `
[membranes.SW30-XLE]
a_value = 1.1e-7
b_value = 9.0e-9
area_m2 = 37.0
default_dp_element = 0.3
default_osm_coef = 0.0008
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("update catalog: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		if _, err := reg.Lookup("SW30-XLE"); err == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatal("watcher did not reload the catalog within 5s")
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func TestWatcherKeepsCatalogOnBadWrite(t *testing.T) {
	path := writeCatalog(t, testCatalog)
	reg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(reg, nil)
	go func() { _ = w.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(path, []byte("broken = ["), 0o644); err != nil {
		t.Fatalf("overwrite catalog: %v", err)
	}

	// Wait out the debounce plus slack, then confirm the old catalog still
	// serves lookups.
	time.Sleep(500 * time.Millisecond)

	if _, err := reg.Lookup("CPA5-LD"); err != nil {
		t.Fatalf("Lookup() after bad write: %v", err)
	}
}
