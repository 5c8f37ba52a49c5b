package scan

import (
	"reflect"
	"testing"

	"github.com/kbukum/dock/registry"
)

type Logger interface{ Log(string) }

type Sensor interface{ Read() float64 }

type console struct{ name string }

func (c *console) Log(string) {}

// thermo serves both roles.
type thermo struct{ id int }

func (t *thermo) Read() float64 { return float64(t.id) }
func (t *thermo) Log(string)    {}

type rock struct{ id int }

var (
	loggerRole = reflect.TypeFor[Logger]()
	sensorRole = reflect.TypeFor[Sensor]()
)

func TestScanPartitionsByRole(t *testing.T) {
	c1, c2 := &console{name: "a"}, &console{name: "b"}
	th := &thermo{id: 1}
	pool := []any{c1, &rock{}, th, nil, c2}

	res := Scan([]reflect.Type{sensorRole, loggerRole}, pool)

	roles := res.Roles()
	if len(roles) != 2 || roles[0] != sensorRole || roles[1] != loggerRole {
		t.Errorf("expected role order preserved, got %v", roles)
	}

	logs := res.Candidates(loggerRole)
	want := []any{c1, th, c2}
	if len(logs) != len(want) {
		t.Fatalf("expected %d loggers, got %d", len(want), len(logs))
	}
	for i := range want {
		if logs[i] != want[i] {
			t.Errorf("position %d: expected %v, got %v", i, want[i], logs[i])
		}
	}

	sensors := res.Candidates(sensorRole)
	if len(sensors) != 1 || sensors[0] != th {
		t.Errorf("expected [thermo], got %v", sensors)
	}
	if res.Objects() != 4 {
		t.Errorf("expected 4 non-nil objects, got %d", res.Objects())
	}
	if res.Count() != 4 {
		t.Errorf("expected 4 role/candidate pairs, got %d", res.Count())
	}
}

func TestScanEmptyPool(t *testing.T) {
	res := Scan([]reflect.Type{loggerRole, nil, loggerRole}, nil)
	if len(res.Roles()) != 1 {
		t.Errorf("expected nil and duplicate roles dropped, got %v", res.Roles())
	}
	if c := res.Candidates(loggerRole); c == nil || len(c) != 0 {
		t.Errorf("expected empty non-nil candidates, got %#v", c)
	}
}

func TestResultApply(t *testing.T) {
	c1 := &console{name: "a"}
	res := Scan([]reflect.Type{loggerRole, sensorRole}, []any{c1})

	reg := registry.New()
	if err := res.Apply(reg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !reg.Known(sensorRole) {
		t.Error("expected role without candidates to become known")
	}
	all, err := reg.GetAll(loggerRole)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 1 || all[0] != c1 {
		t.Errorf("expected [c1], got %v", all)
	}

	// Applying again is a union, not an accumulation.
	res.Apply(reg)
	if reg.Count(loggerRole) != 1 {
		t.Errorf("expected re-apply to dedup, got %d", reg.Count(loggerRole))
	}
}
