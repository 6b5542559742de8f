package gate

import (
	"testing"
)

// newTestService creates a gate service without persistence. Tests that
// exercise the persistence path pass a store explicitly.
func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	svc, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return svc
}

func TestFeatureEnableIsIdempotent(t *testing.T) {
	svc := newTestService(t, Config{})
	f := NewFeature(svc, "TEST_FEATURE")
	defer f.Close()

	notifications := 0
	f.Subscribe(func() { notifications++ })

	if f.IsEnabled() {
		t.Fatalf("Expected feature to start disabled")
	}

	f.Enable()
	f.Enable()

	if !f.IsEnabled() {
		t.Errorf("Expected feature to be enabled")
	}
	if notifications != 1 {
		t.Errorf("Expected exactly one notification, got %d", notifications)
	}
}

func TestFeatureSubscribersRunInRegistrationOrder(t *testing.T) {
	svc := newTestService(t, Config{})
	f := NewFeature(svc, "TEST_FEATURE")
	defer f.Close()

	var order []int
	f.Subscribe(func() { order = append(order, 1) })
	f.Subscribe(func() { order = append(order, 2) })
	f.Subscribe(func() { order = append(order, 3) })

	f.Enable()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("Expected subscribers to run in order 1,2,3, got %v", order)
	}
}

func TestFeatureLateSubscriberIsNotReplayed(t *testing.T) {
	svc := newTestService(t, Config{})
	f := NewFeature(svc, "TEST_FEATURE")
	defer f.Close()

	f.Enable()

	invoked := false
	f.Subscribe(func() { invoked = true })

	f.Enable() // still a no-op
	if invoked {
		t.Errorf("Expected subscriber attached after the transition to never be invoked")
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	svc := newTestService(t, Config{})
	f := NewFeature(svc, "TEST_FEATURE")
	defer f.Close()

	defer func() {
		if recover() == nil {
			t.Errorf("Expected duplicate registration to panic")
		}
	}()
	NewFeature(svc, "TEST_FEATURE")
}

func TestFeatureCloseUnregisters(t *testing.T) {
	svc := newTestService(t, Config{})
	f := NewFeature(svc, "TEST_FEATURE")

	if _, ok := svc.RegisteredFeatures()["TEST_FEATURE"]; !ok {
		t.Fatalf("Expected feature to be registered after construction")
	}

	f.Close()
	f.Close() // safe to call twice

	if _, ok := svc.RegisteredFeatures()["TEST_FEATURE"]; ok {
		t.Errorf("Expected feature to be unregistered after Close")
	}

	// the name can now be claimed again
	f2 := NewFeature(svc, "TEST_FEATURE")
	defer f2.Close()
}
