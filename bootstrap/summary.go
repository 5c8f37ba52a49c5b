package bootstrap

import (
	"fmt"
	"io"
	"time"

	"github.com/kbukum/dock/lifecycle"
	"github.com/kbukum/dock/observability"
)

// ComponentStatus holds the tracked status of an application part.
type ComponentStatus struct {
	Name    string
	Status  string
	Healthy bool
}

// InfrastructureInfo holds a supporting service such as the inspector.
type InfrastructureInfo struct {
	Name    string
	Type    string // e.g. "http", "otlp"
	Status  string
	Details string
	Healthy bool
}

// Summary tracks and displays the application bootstrap process.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	components      []ComponentStatus
	infrastructure  []InfrastructureInfo
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName:    serviceName,
		version:        version,
		components:     make([]ComponentStatus, 0),
		infrastructure: make([]InfrastructureInfo, 0),
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackComponent records a component status. Tracking a name again
// replaces its earlier status.
func (s *Summary) TrackComponent(name, status string, healthy bool) {
	for i := range s.components {
		if s.components[i].Name == name {
			s.components[i] = ComponentStatus{Name: name, Status: status, Healthy: healthy}
			return
		}
	}
	s.components = append(s.components, ComponentStatus{
		Name:    name,
		Status:  status,
		Healthy: healthy,
	})
}

// TrackInfrastructure adds a supporting service with its details.
func (s *Summary) TrackInfrastructure(name, infraType, status, details string, healthy bool) {
	s.infrastructure = append(s.infrastructure, InfrastructureInfo{
		Name:    name,
		Type:    infraType,
		Status:  status,
		Details: details,
		Healthy: healthy,
	})
}

// Components returns the tracked components.
func (s *Summary) Components() []ComponentStatus { return s.components }

// Display writes the summary with the controller's snapshot and health.
func (s *Summary) Display(w io.Writer, snap lifecycle.Snapshot, health observability.Health) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "🚀 %s v%s started in %.2fs\n\n",
		s.serviceName, s.version, s.startupDuration.Seconds())

	if len(s.infrastructure) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, inf := range s.infrastructure {
			fmt.Fprintf(w, "   %s %s %s: %s [%s]\n", treePrefix(i, len(s.infrastructure)),
				statusIcon(inf.Status, inf.Healthy), inf.Name, inf.Details, inf.Type)
		}
		fmt.Fprintf(w, "\n")
	}

	if len(s.components) > 0 {
		fmt.Fprintf(w, "📦 Components\n")
		for i, c := range s.components {
			fmt.Fprintf(w, "   %s %s %s (%s)\n", treePrefix(i, len(s.components)),
				statusIcon(c.Status, c.Healthy), c.Name, c.Status)
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "🧩 Modules (%d)\n", len(snap.Modules))
	for i, m := range snap.Modules {
		fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(snap.Modules)), m)
	}

	fmt.Fprintf(w, "\n🎭 Roles (%d)\n", len(snap.Roles))
	for i, r := range snap.Roles {
		stale := ""
		if r.Stale > 0 {
			stale = fmt.Sprintf(", %d stale", r.Stale)
		}
		fmt.Fprintf(w, "   %s %s (%d candidates%s)\n", treePrefix(i, len(snap.Roles)), r.Role, len(r.Candidates), stale)
	}

	if len(snap.Types) > 0 {
		fmt.Fprintf(w, "\n🔗 Bindable Types (%d)\n", len(snap.Types))
		for i, t := range snap.Types {
			fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(snap.Types)), t.Type)
			for j, r := range t.Requests {
				branch := "│   "
				if i == len(snap.Types)-1 {
					branch = "    "
				}
				fmt.Fprintf(w, "   %s%s %s ← %s [%s]\n", branch, treePrefix(j, len(t.Requests)),
					r.Member, r.Role, r.Cardinality)
			}
		}
	}

	if len(snap.Issues) > 0 {
		fmt.Fprintf(w, "\n⚠️  Issues (%d)\n", len(snap.Issues))
		for i, is := range snap.Issues {
			fmt.Fprintf(w, "   %s %s\n", treePrefix(i, len(snap.Issues)), is)
		}
	}

	msg := ""
	if health.Message != "" {
		msg = fmt.Sprintf(" (%s)", health.Message)
	}
	fmt.Fprintf(w, "\n🏥 Health: %s %s%s\n\n", healthStatusIcon(health.Status), health.Status, msg)
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func statusIcon(status string, healthy bool) string {
	if !healthy {
		return "❌"
	}
	switch status {
	case "active", "ready", "created", "healthy":
		return "✅"
	case "types_loaded", "uninitialized":
		return "⏳"
	case "disposed", "disabled":
		return "⏸️"
	default:
		return "⚠️"
	}
}

func healthStatusIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	case observability.HealthStatusDown:
		return "❌"
	default:
		return "❓"
	}
}
