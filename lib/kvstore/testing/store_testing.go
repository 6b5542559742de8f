package testing

import (
	"fmt"
	"testing"

	"github.com/ValentinKolb/dGate/lib/kvstore"
)

// RunStoreTests runs a shared test suite for an IStore implementation.
func RunStoreTests(t *testing.T, name string, factory kvstore.StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("FirstBoot", func(t *testing.T) {
			testFirstBoot(t, factory())
		})

		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory())
		})

		t.Run("Overwrite", func(t *testing.T) {
			testOverwrite(t, factory())
		})

		t.Run("MultipleKeys", func(t *testing.T) {
			testMultipleKeys(t, factory())
		})

		t.Run("EmptyValue", func(t *testing.T) {
			testEmptyValue(t, factory())
		})
	})
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testFirstBoot(t *testing.T, store kvstore.IStore) {
	defer store.Close()

	_, found, err := store.Get("enabled_features")
	if err != nil {
		t.Fatalf("Get on fresh store returned error: %v", err)
	}
	if found {
		t.Errorf("Expected Get on fresh store to return found=false")
	}
}

func testSetGet(t *testing.T, store kvstore.IStore) {
	defer store.Close()

	if err := store.Set("test-key", "test-value"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, found, err := store.Get("test-key")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found {
		t.Fatalf("Expected key test-key to exist after Set")
	}
	if value != "test-value" {
		t.Errorf("Expected value test-value, got %s", value)
	}
}

func testOverwrite(t *testing.T, store kvstore.IStore) {
	defer store.Close()

	if err := store.Set("key", "old"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := store.Set("key", "new"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, found, err := store.Get("key")
	if err != nil || !found {
		t.Fatalf("Get after overwrite: found=%t err=%v", found, err)
	}
	if value != "new" {
		t.Errorf("Expected overwritten value new, got %s", value)
	}
}

func testMultipleKeys(t *testing.T, store kvstore.IStore) {
	defer store.Close()

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key-%d", i)
		if err := store.Set(key, fmt.Sprintf("value-%d", i)); err != nil {
			t.Fatalf("Set %s returned error: %v", key, err)
		}
	}

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("key-%d", i)
		value, found, err := store.Get(key)
		if err != nil || !found {
			t.Fatalf("Get %s: found=%t err=%v", key, found, err)
		}
		if expected := fmt.Sprintf("value-%d", i); value != expected {
			t.Errorf("Expected %s, got %s", expected, value)
		}
	}
}

func testEmptyValue(t *testing.T, store kvstore.IStore) {
	defer store.Close()

	if err := store.Set("empty", ""); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, found, err := store.Get("empty")
	if err != nil || !found {
		t.Fatalf("Get empty: found=%t err=%v", found, err)
	}
	if value != "" {
		t.Errorf("Expected empty value, got %q", value)
	}
}
