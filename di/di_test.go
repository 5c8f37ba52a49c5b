package di

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/dock/errors"
	"github.com/kbukum/dock/host"
	"github.com/kbukum/dock/registry"
)

type Sensor interface{ Read() int }

type probe struct{ v int }

func (p *probe) Read() int { return p.v }

type Idle interface{ Idle() }

// registrar adapts *registry.Registry to Registrar for tests.
type registrar struct{ *registry.Registry }

func (r registrar) RegisterCandidate(role reflect.Type, obj any) error {
	return r.AddCandidate(role, obj)
}

func newRegistry(t *testing.T, sensors ...*probe) *registry.Registry {
	t.Helper()
	r := registry.New()
	r.RegisterRole(Role[Sensor]())
	r.RegisterRole(Role[Idle]())
	for _, s := range sensors {
		if err := Register[Sensor](registrar{r}, s); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	return r
}

func TestGet(t *testing.T) {
	p := &probe{v: 1}
	r := newRegistry(t, p, &probe{v: 2})

	got, ok, err := Get[Sensor](r)
	if err != nil || !ok {
		t.Fatalf("expected candidate, got ok=%v err=%v", ok, err)
	}
	if got != p {
		t.Errorf("expected first probe, got %v", got)
	}

	_, ok, err = Get[Idle](r)
	if err != nil || ok {
		t.Errorf("expected empty known role, got ok=%v err=%v", ok, err)
	}

	_, _, err = Get[fmt.Stringer](r)
	if !errors.HasCode(err, errors.ErrCodeUnknownRole) {
		t.Errorf("expected UNKNOWN_ROLE, got %v", err)
	}
}

func TestGetAllAndFilter(t *testing.T) {
	r := newRegistry(t, &probe{v: 1}, &probe{v: 2}, &probe{v: 3})

	all, err := GetAll[Sensor](r)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 || all[2].Read() != 3 {
		t.Errorf("expected 3 sensors in order, got %v", all)
	}

	odd, err := Filter(r, func(s Sensor) bool { return s.Read()%2 == 1 })
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if len(odd) != 2 || odd[1].Read() != 3 {
		t.Errorf("expected readings 1 and 3, got %v", odd)
	}

	if _, err := GetAll[fmt.Stringer](r); !errors.HasCode(err, errors.ErrCodeUnknownRole) {
		t.Errorf("expected UNKNOWN_ROLE, got %v", err)
	}
}

func TestTryGet(t *testing.T) {
	r := newRegistry(t, &probe{v: 7})

	if s, ok := TryGet[Sensor](r); !ok || s.Read() != 7 {
		t.Errorf("expected sensor 7, got %v %v", s, ok)
	}
	if _, ok := TryGet[Idle](r); ok {
		t.Error("expected false for empty role")
	}
	if _, ok := TryGet[fmt.Stringer](r); ok {
		t.Error("expected false for unknown role")
	}
}

func TestMustGet(t *testing.T) {
	r := newRegistry(t, &probe{v: 4})
	if MustGet[Sensor](r).Read() != 4 {
		t.Error("expected sensor 4")
	}

	tests := []struct {
		name string
		call func()
		want string
	}{
		{"empty", func() { MustGet[Idle](r) }, "no candidates"},
		{"unknown", func() { MustGet[fmt.Stringer](r) }, "failed to get"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				rec := recover()
				if rec == nil {
					t.Fatal("expected panic")
				}
				if !strings.Contains(fmt.Sprint(rec), tc.want) {
					t.Errorf("expected panic containing %q, got %v", tc.want, rec)
				}
			}()
			tc.call()
		})
	}
}

type factory map[string]any

func (f factory) Instantiate(template any, _ ...host.Placement) (any, error) {
	obj, ok := f[fmt.Sprint(template)]
	if !ok {
		return nil, fmt.Errorf("unknown template %v", template)
	}
	return obj, nil
}

func TestInstantiate(t *testing.T) {
	p := &probe{v: 9}
	f := factory{"probe": p, "text": "hello"}

	got, err := Instantiate[*probe](f, "probe")
	if err != nil || got != p {
		t.Errorf("expected probe, got %v err=%v", got, err)
	}
	if _, err := Instantiate[*probe](f, "text"); err == nil {
		t.Error("expected type mismatch error")
	}
	if _, err := Instantiate[*probe](f, "missing"); err == nil {
		t.Error("expected factory error")
	}
}
