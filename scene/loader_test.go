package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/dock/catalog"
	"github.com/kbukum/dock/lifecycle"
	"github.com/kbukum/dock/logger"
)

const demoScene = `
name: demo
nodes:
  - name: player
    components:
      - type: health
        with:
          max: 100
      - type: hud
    children:
      - name: camera
        active: false
        components:
          - type: health
prefabs:
  - name: enemy
    components:
      - type: health
        with: {max: 20}
`

// HealthRole is served by health components.
type HealthRole interface{ Current() int }

func (h *health) Current() int { return h.Max }

type hud struct {
	Behaviour
	Bars []HealthRole `dock:""`
}

func demoFactories() *Factories {
	return NewFactories().
		Register("health", Type[health]()).
		Register("hud", Type[hud]())
}

func TestParse(t *testing.T) {
	s, err := Parse([]byte(demoScene), demoFactories())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if s.Name() != "demo" {
		t.Errorf("expected demo, got %s", s.Name())
	}

	player := s.Find("player")
	if player == nil {
		t.Fatal("expected player node")
	}
	h, ok := player.Components()[0].(*health)
	if !ok || h.Max != 100 {
		t.Errorf("expected health with max 100, got %+v", player.Components()[0])
	}
	if h.Node() != player {
		t.Error("expected decoded component attached")
	}

	camera := s.Find("player/camera")
	if camera == nil || camera.Active() {
		t.Errorf("expected inactive camera, got %+v", camera)
	}
	if got := camera.Components()[0].(*health).Max; got != 0 {
		t.Errorf("expected zero max without params, got %d", got)
	}

	if !reflect.DeepEqual(s.Prefabs(), []string{"enemy"}) {
		t.Errorf("expected enemy prefab, got %v", s.Prefabs())
	}
	a, _ := s.Instantiate("enemy")
	b, _ := s.Instantiate("enemy")
	if a == b {
		t.Error("expected each instantiation to build a fresh node")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "name: [", "parsing"},
		{"no name", "nodes: []", "name is required"},
		{"unnamed node", "name: x\nnodes:\n  - components: []", "node without name"},
		{"unknown type", "name: x\nnodes:\n  - name: a\n    components:\n      - type: laser", "unknown component type"},
		{"bad params", "name: x\nnodes:\n  - name: a\n    components:\n      - type: health\n        with: {max: lots}", "params"},
		{"bad prefab", "name: x\nprefabs:\n  - name: p\n    components:\n      - type: laser", "prefab \"p\""},
		{"duplicate prefab", "name: x\nprefabs:\n  - name: p\n  - name: p", "duplicate prefab"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml), demoFactories())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestFactoryErrors(t *testing.T) {
	f := NewFactories().
		Register("broken", func(func(any) error) (any, error) { return nil, fmt.Errorf("no power") }).
		Register("empty", func(func(any) error) (any, error) { return nil, nil })

	if !reflect.DeepEqual(f.List(), []string{"broken", "empty"}) {
		t.Errorf("expected sorted names, got %v", f.List())
	}
	for _, name := range f.List() {
		if _, err := f.build(ComponentDef{Type: name}); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.yml")
	if err := os.WriteFile(path, []byte(demoScene), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(path, demoFactories())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(s.Roots()) != 1 {
		t.Errorf("expected 1 root, got %d", len(s.Roots()))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSceneDrivesController(t *testing.T) {
	s, err := Parse([]byte(demoScene), demoFactories())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	cat := catalog.New()
	m := cat.Module("demo")
	catalog.Role[HealthRole](m)
	catalog.Bindable[hud](m)

	ctl, err := lifecycle.New(s, cat, lifecycle.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer ctl.Shutdown()

	if err := ctl.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	h := s.Find("player").Components()[1].(*hud)
	if len(h.Bars) != 2 {
		t.Fatalf("expected player and inactive camera health, got %d", len(h.Bars))
	}

	enemy, err := ctl.Instantiate("enemy")
	if err != nil {
		t.Fatalf("Instantiate failed: %v", err)
	}
	all, _ := ctl.GetAll(reflect.TypeFor[HealthRole]())
	if len(all) != 3 {
		t.Errorf("expected instantiated enemy health registered, got %d", len(all))
	}

	s.Destroy(enemy.(*Node))
	all, _ = ctl.GetAll(reflect.TypeFor[HealthRole]())
	if len(all) != 2 {
		t.Errorf("expected destroyed health filtered out, got %d", len(all))
	}
	if n := ctl.Registry().Stale(reflect.TypeFor[HealthRole]()); n != 1 {
		t.Errorf("expected 1 stale candidate, got %d", n)
	}

	if err := ctl.ReloadCandidates(); err != nil {
		t.Fatalf("ReloadCandidates failed: %v", err)
	}
	if n := ctl.Registry().Stale(reflect.TypeFor[HealthRole]()); n != 0 {
		t.Errorf("expected reload to drop stale candidates, got %d", n)
	}
}
