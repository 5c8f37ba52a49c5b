package inspect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/dock/catalog"
	"github.com/kbukum/dock/config"
	"github.com/kbukum/dock/lifecycle"
	"github.com/kbukum/dock/logger"
	"github.com/kbukum/dock/scene"
)

type Clock interface{ Now() int }

type tick struct{ scene.Behaviour }

func (t *tick) Now() int { return 1 }

type watch struct {
	scene.Behaviour
	Clock Clock `dock:""`
}

type Ghost interface{ Boo() }

type haunted struct {
	scene.Behaviour
	G Ghost `dock:""`
}

func newStore(t *testing.T) (*Store, *lifecycle.Controller) {
	t.Helper()
	s := scene.New("inspect")
	s.Add(scene.NewNode("root", &tick{}, &watch{}))

	cat := catalog.New()
	m := cat.Module("game")
	catalog.Role[Clock](m)
	catalog.Bindable[watch](m)
	catalog.Bindable[haunted](m)

	store := NewStore()
	ctl, err := lifecycle.New(s, cat,
		lifecycle.WithLogger(logger.NewNop()),
		lifecycle.WithWiring(config.WiringConfig{Mode: config.ModeLenient}),
		lifecycle.WithOnReady(store.Publish),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = ctl.Shutdown() })
	return store, ctl
}

func get(t *testing.T, h http.Handler, path string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	body := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: invalid JSON %q: %v", path, rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestUnpublished(t *testing.T) {
	srv := New(config.InspectorConfig{Host: "127.0.0.1"}, NewStore(), logger.NewNop())

	code, body := get(t, srv.Handler(), "/health")
	if code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", code)
	}
	if body["status"] != "down" {
		t.Errorf("expected down, got %v", body["status"])
	}

	code, body = get(t, srv.Handler(), "/snapshot")
	if code != http.StatusConflict {
		t.Errorf("expected 409, got %d", code)
	}
	errBody, _ := body["error"].(map[string]any)
	if errBody["code"] != "INVALID_STATE" {
		t.Errorf("expected INVALID_STATE, got %v", errBody["code"])
	}
}

func TestRoutes(t *testing.T) {
	store, ctl := newStore(t)
	if err := ctl.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	h := New(config.InspectorConfig{Host: "127.0.0.1"}, store, logger.NewNop()).Handler()

	tests := []struct {
		path  string
		code  int
		check func(t *testing.T, body map[string]any)
	}{
		{"/health", http.StatusOK, func(t *testing.T, body map[string]any) {
			if body["status"] != "up" {
				t.Errorf("expected up, got %v", body["status"])
			}
		}},
		{"/snapshot", http.StatusOK, func(t *testing.T, body map[string]any) {
			if body["id"] != ctl.ID() || body["state"] != "ready" {
				t.Errorf("unexpected snapshot %v", body)
			}
		}},
		{"/roles", http.StatusOK, func(t *testing.T, body map[string]any) {
			if body["count"] != float64(1) {
				t.Errorf("expected 1 role, got %v", body["count"])
			}
		}},
		{"/roles/inspect.Clock", http.StatusOK, func(t *testing.T, body map[string]any) {
			cands, _ := body["candidates"].([]any)
			if len(cands) != 1 || cands[0] != "*inspect.tick" {
				t.Errorf("expected [*inspect.tick], got %v", body["candidates"])
			}
		}},
		{"/roles/inspect.Nope", http.StatusNotFound, func(t *testing.T, body map[string]any) {
			errBody, _ := body["error"].(map[string]any)
			if errBody["code"] != "UNKNOWN_ROLE" {
				t.Errorf("expected UNKNOWN_ROLE, got %v", errBody["code"])
			}
		}},
		{"/types", http.StatusOK, func(t *testing.T, body map[string]any) {
			if body["count"] != float64(2) {
				t.Errorf("expected 2 types, got %v", body["count"])
			}
		}},
		{"/issues", http.StatusOK, func(t *testing.T, body map[string]any) {
			if body["count"] != float64(1) {
				t.Errorf("expected the ghost issue, got %v", body["issues"])
			}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			code, body := get(t, h, tc.path)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			tc.check(t, body)
		})
	}
}

func TestRequestIDAndRecovery(t *testing.T) {
	srv := New(config.InspectorConfig{Host: "127.0.0.1"}, NewStore(), logger.NewNop())
	srv.Engine().GET("/panic", func(*gin.Context) { panic("kaboom") })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set("X-Request-Id", "req-1")
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") != "req-1" {
		t.Errorf("expected request id echoed, got %q", rec.Header().Get("X-Request-Id"))
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected generated request id")
	}
}

func TestServerStartStop(t *testing.T) {
	store, ctl := newStore(t)
	if err := ctl.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	srv := New(config.InspectorConfig{Host: "127.0.0.1", Port: 0}, store, logger.NewNop())
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/health", srv.Addr()))
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	if err := srv.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}
