package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/dock/errors"
)

type Logger interface{ Log(msg string) }

type Consumer struct {
	Log     Logger   `dock:""`
	Sinks   []Logger `dock:""`
	Name    string
	ignored Logger `dock:"-"`
	hidden  Logger `dock:""`
}

type Base struct {
	Log Logger `dock:""`
}

type Derived struct {
	Base
	Extra []Logger `dock:""`
}

var DefaultLog Logger

func TestModulesInCreationOrder(t *testing.T) {
	c := New()
	c.Module("game")
	c.Module("ui")
	c.Module("game")

	got := c.Modules()
	if len(got) != 2 || got[0] != "game" || got[1] != "ui" {
		t.Errorf("expected [game ui], got %v", got)
	}
}

func TestTypesIn(t *testing.T) {
	c := New()
	game := c.Module("game")
	Role[Logger](game)
	Bindable[Consumer](game)
	Bindable[*Derived](game)
	Role[*Consumer](game)

	decls := c.TypesIn("game")
	if len(decls) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(decls))
	}
	if decls[0].Type != reflect.TypeFor[Logger]() || !decls[0].Role || decls[0].Bindable {
		t.Errorf("unexpected first declaration: %+v", decls[0])
	}
	if decls[1].Type != reflect.TypeFor[Consumer]() || !decls[1].Bindable {
		t.Errorf("unexpected second declaration: %+v", decls[1])
	}
	if decls[2].Type != reflect.TypeFor[Derived]() {
		t.Errorf("expected pointer bindable to be recorded as struct, got %v", decls[2].Type)
	}
	if decls[3].Type != reflect.TypeFor[*Consumer]() || !decls[3].Role {
		t.Errorf("expected pointer role kept as declared, got %+v", decls[3])
	}

	if c.TypesIn("missing") != nil {
		t.Error("expected nil for unknown module")
	}
}

func TestRoleAndBindableMerge(t *testing.T) {
	c := New()
	m := c.Module("game")
	m.Role(reflect.TypeFor[Consumer]()).Bindable(reflect.TypeFor[Consumer]())

	decls := c.TypesIn("game")
	if len(decls) != 1 {
		t.Fatalf("expected one merged declaration, got %d", len(decls))
	}
	if !decls[0].Role || !decls[0].Bindable {
		t.Errorf("expected role and bindable flags, got %+v", decls[0])
	}
}

func TestMembersOf(t *testing.T) {
	c := New()
	members := c.MembersOf(reflect.TypeFor[*Consumer]())

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	if strings.Join(names, ",") != "Log,Sinks,hidden" {
		t.Fatalf("expected members Log,Sinks,hidden, got %v", names)
	}
	if members[1].Type != reflect.TypeFor[[]Logger]() {
		t.Errorf("expected Sinks type []Logger, got %v", members[1].Type)
	}
	if members[2].Index[0] != 4 {
		t.Errorf("expected hidden field index 4, got %v", members[2].Index)
	}
	for _, m := range members {
		if m.Declaring != reflect.TypeFor[Consumer]() {
			t.Errorf("expected declaring type Consumer, got %v", m.Declaring)
		}
	}
}

func TestMembersOfDirectOnly(t *testing.T) {
	c := New()
	members := c.MembersOf(reflect.TypeFor[Derived]())
	if len(members) != 1 || members[0].Name != "Extra" {
		t.Errorf("expected only the directly declared Extra member, got %+v", members)
	}
}

func TestMembersOfNonStruct(t *testing.T) {
	c := New()
	if c.MembersOf(reflect.TypeFor[int]()) != nil {
		t.Error("expected nil members for non-struct")
	}
	if c.MembersOf(nil) != nil {
		t.Error("expected nil members for nil type")
	}
}

func TestStatic(t *testing.T) {
	c := New()
	game := c.Module("game")
	// Members computed before the static is declared must not be served stale.
	_ = c.MembersOf(reflect.TypeFor[Consumer]())
	game.Static(reflect.TypeFor[*Consumer](), "DefaultLog", &DefaultLog)

	decls := c.TypesIn("game")
	if len(decls) != 1 || !decls[0].Bindable {
		t.Fatalf("expected static owner to be declared bindable, got %+v", decls)
	}

	members := c.MembersOf(reflect.TypeFor[Consumer]())
	last := members[len(members)-1]
	if !last.Static || last.Name != "DefaultLog" {
		t.Fatalf("expected static member last, got %+v", last)
	}
	if last.Type != reflect.TypeFor[Logger]() {
		t.Errorf("expected static type Logger, got %v", last.Type)
	}
	if !last.Target.CanSet() {
		t.Error("expected settable static target")
	}
}

func TestValidate(t *testing.T) {
	c := New()
	game := c.Module("game")
	Role[Logger](game)
	Bindable[Consumer](game)
	if err := c.Validate(); err != nil {
		t.Fatalf("expected valid catalog, got %v", err)
	}

	bad := c.Module("Bad Module")
	bad.Role(nil)
	Bindable[int](bad)
	bad.Static(reflect.TypeFor[Consumer](), "X", DefaultLog)
	bad.Static(reflect.TypeFor[string](), "Y", &DefaultLog)

	err := c.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{"role type is nil", "bindable type int is not a struct", "must be a non-nil pointer", "static owner string is not a struct", "does not match required format"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}
