package lifecycle

import (
	"time"

	"github.com/kbukum/dock/component"
)

// Snapshot is a point-in-time, JSON-friendly view of a controller.
type Snapshot struct {
	ID      string         `json:"id"`
	State   string         `json:"state"`
	Modules []string       `json:"modules"`
	Roles   []RoleSnapshot `json:"roles"`
	Types   []TypeSnapshot `json:"types"`
	Issues  []string       `json:"issues,omitempty"`
	Reloads int            `json:"reloads"`
	// LastReload is zero until the first candidate reload.
	LastReload time.Time `json:"last_reload,omitempty"`
	TakenAt    time.Time `json:"taken_at"`
}

// RoleSnapshot lists the candidates of one role.
type RoleSnapshot struct {
	Role       string   `json:"role"`
	Candidates []string `json:"candidates"`
	Stale      int      `json:"stale"`
}

// TypeSnapshot lists the binding requests of one bindable type.
type TypeSnapshot struct {
	Type     string            `json:"type"`
	Requests []RequestSnapshot `json:"requests"`
}

// RequestSnapshot describes one binding request.
type RequestSnapshot struct {
	Member      string `json:"member"`
	Role        string `json:"role"`
	Cardinality string `json:"cardinality"`
	Static      bool   `json:"static,omitempty"`
}

// Snapshot captures the controller's modules, registry contents, indexed
// requests and outstanding issues.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		ID:         c.id,
		State:      c.state.String(),
		Modules:    append([]string(nil), c.modules...),
		Roles:      []RoleSnapshot{},
		Types:      []TypeSnapshot{},
		Reloads:    c.reloads,
		LastReload: c.lastReload,
		TakenAt:    time.Now().UTC(),
	}
	if c.state == StateDisposed {
		return s
	}

	for _, role := range c.registry.Roles() {
		rs := RoleSnapshot{Role: role.String(), Candidates: []string{}, Stale: c.registry.Stale(role)}
		all, _ := c.registry.GetAll(role)
		for _, cand := range all {
			rs.Candidates = append(rs.Candidates, component.Describe(cand))
		}
		s.Roles = append(s.Roles, rs)
	}

	if c.index == nil {
		return s
	}
	for _, t := range c.index.Types() {
		ts := TypeSnapshot{Type: t.String(), Requests: []RequestSnapshot{}}
		for _, r := range c.index.Requests(t) {
			role := "<unresolvable>"
			if r.Role != nil {
				role = r.Role.String()
			}
			ts.Requests = append(ts.Requests, RequestSnapshot{
				Member:      r.Member,
				Role:        role,
				Cardinality: r.Cardinality.String(),
				Static:      r.Static,
			})
		}
		s.Types = append(s.Types, ts)
	}
	for _, is := range c.Issues() {
		s.Issues = append(s.Issues, is.Err.Error())
	}
	return s
}
