package cache

import (
	"strings"
	"testing"
	"time"
)

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("etcd", ProviderConfig{Size: 4, TTL: time.Hour})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), `unknown provider "etcd"`) {
		t.Fatalf("Unexpected error message: %v", err)
	}
	// The message lists what is registered, to make config typos obvious.
	if !strings.Contains(err.Error(), "memory") {
		t.Fatalf("Expected registered providers in message, got: %v", err)
	}
}

func TestRegisteredProviders(t *testing.T) {
	names := RegisteredProviders()

	found := map[string]bool{}
	for _, name := range names {
		found[name] = true
	}
	if !found["memory"] || !found["redis"] {
		t.Fatalf("Expected memory and redis to be registered, got %v", names)
	}

	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Expected sorted provider names, got %v", names)
		}
	}
}

func TestRegister_Duplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on duplicate registration")
		}
	}()
	Register("memory", newMemoryCache)
}

func TestRegister_NilProvider(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on nil provider")
		}
	}()
	Register("broken", nil)
}
