package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/extpoint/extpoint/config"
)

// fakeHost is an in-memory settings API
type fakeHost struct {
	modules    map[string]string            // name -> id
	categories map[string]map[string]string // moduleID -> name -> id
	values     map[string]string            // module/category/key -> value
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		modules:    make(map[string]string),
		categories: make(map[string]map[string]string),
		values:     make(map[string]string),
	}
}

func (f *fakeHost) server(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /settings/modules/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		id, ok := f.modules[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(Module{ID: id, Name: name})
	})
	mux.HandleFunc("POST /settings/modules", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		id := "mod-" + body["name"]
		f.modules[body["name"]] = id
		_ = json.NewEncoder(w).Encode(Module{ID: id, Name: body["name"]})
	})
	mux.HandleFunc("GET /settings/modules/{module}/categories/{name}", func(w http.ResponseWriter, r *http.Request) {
		moduleID := r.PathValue("module")
		name := r.PathValue("name")
		id, ok := f.categories[moduleID][name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(Category{ID: id, ModuleID: moduleID, Name: name})
	})
	mux.HandleFunc("POST /settings/modules/{module}/categories", func(w http.ResponseWriter, r *http.Request) {
		moduleID := r.PathValue("module")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if f.categories[moduleID] == nil {
			f.categories[moduleID] = make(map[string]string)
		}
		id := "cat-" + body["name"]
		f.categories[moduleID][body["name"]] = id
		_ = json.NewEncoder(w).Encode(Category{ID: id, ModuleID: moduleID, Name: body["name"]})
	})
	mux.HandleFunc("GET /settings/modules/{module}/categories/{category}/values/{key}", func(w http.ResponseWriter, r *http.Request) {
		k := r.PathValue("module") + "/" + r.PathValue("category") + "/" + r.PathValue("key")
		value, ok := f.values[k]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(Value{Key: r.PathValue("key"), Value: value})
	})
	mux.HandleFunc("POST /settings/modules/{module}/categories/{category}/values", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		k := r.PathValue("module") + "/" + r.PathValue("category") + "/" + body["key"]
		f.values[k] = body["value"]
		_ = json.NewEncoder(w).Encode(Value{Key: body["key"], Value: body["value"]})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, host *fakeHost) *Client {
	srv := host.server(t)
	return NewClient(&config.Settings{Endpoint: srv.URL, Timeout: "5s"})
}

func TestNewClient_NoEndpoint(t *testing.T) {
	if c := NewClient(nil); c != nil {
		t.Error("expected nil client without config")
	}
	if c := NewClient(&config.Settings{}); c != nil {
		t.Error("expected nil client without endpoint")
	}
}

func TestEnsureModule(t *testing.T) {
	host := newFakeHost()
	c := newTestClient(t, host)
	ctx := context.Background()

	m, err := c.EnsureModule(ctx, "my-ext")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if m.Name != "my-ext" {
		t.Errorf("unexpected module: %+v", m)
	}

	// Second call hits the existing record
	again, err := c.EnsureModule(ctx, "my-ext")
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if again.ID != m.ID {
		t.Errorf("expected same module, got %+v and %+v", m, again)
	}
}

func TestGetValue_NotFound(t *testing.T) {
	host := newFakeHost()
	c := newTestClient(t, host)

	_, err := c.GetValue(context.Background(), "m", "c", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEnsureValue_CreatesChain(t *testing.T) {
	host := newFakeHost()
	c := newTestClient(t, host)
	ctx := context.Background()

	got, err := c.EnsureValue(ctx, "my-ext", "display", "color", "blue")
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if got != "blue" {
		t.Errorf("expected fallback value, got %q", got)
	}
	if _, ok := host.modules["my-ext"]; !ok {
		t.Error("module was not created")
	}

	// Value now exists; fallback must not overwrite it
	if err := c.SetValue(ctx, "my-ext", "display", "color", "red"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, err = c.EnsureValue(ctx, "my-ext", "display", "color", "blue")
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if got != "red" {
		t.Errorf("expected stored value red, got %q", got)
	}
}

func TestClient_HostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(&config.Settings{Endpoint: srv.URL, Timeout: "5s"})
	if _, err := c.GetValue(context.Background(), "m", "c", "k"); err == nil {
		t.Error("expected error from failing host")
	}
}
