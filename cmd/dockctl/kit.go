package main

import (
	"fmt"
	"io"

	"github.com/kbukum/dock/catalog"
	"github.com/kbukum/dock/host"
	"github.com/kbukum/dock/scene"
)

// Clock is the built-in role for time sources.
type Clock interface {
	Tick() int
}

// Sink is the built-in role for message outputs.
type Sink interface {
	Write(msg string)
}

// Ticker is a Clock advancing by Rate on every Tick.
type Ticker struct {
	scene.Behaviour
	Rate int `yaml:"rate"`
	now  int
}

// Tick advances the clock by Rate, or by one when Rate is unset, and
// returns the new time.
func (t *Ticker) Tick() int {
	rate := t.Rate
	if rate == 0 {
		rate = 1
	}
	t.now += rate
	return t.now
}

// ConsoleSink writes prefixed lines to the CLI output.
type ConsoleSink struct {
	scene.Behaviour
	Prefix string `yaml:"prefix"`
	out    io.Writer
}

// Write prints msg on its own line after Prefix.
func (s *ConsoleSink) Write(msg string) {
	fmt.Fprintf(s.out, "%s%s\n", s.Prefix, msg)
}

// Reporter writes Message to every sink once the scene is initialized.
type Reporter struct {
	scene.Behaviour
	Message string `yaml:"message"`
	Clock   Clock  `dock:""`
	Sinks   []Sink `dock:""`
}

// OnEvent reports once the scene finished initializing.
func (r *Reporter) OnEvent(event string) {
	if event != host.EventInitialized {
		return
	}
	t := 0
	if r.Clock != nil {
		t = r.Clock.Tick()
	}
	for _, s := range r.Sinks {
		s.Write(fmt.Sprintf("[t=%d] %s", t, r.Message))
	}
}

// newKit returns the catalog and component factories of the built-in kit.
// Console sinks write to out.
func newKit(out io.Writer) (*catalog.Catalog, *scene.Factories) {
	cat := catalog.New()
	m := cat.Module("kit")
	catalog.Role[Clock](m)
	catalog.Role[Sink](m)
	catalog.Bindable[Reporter](m)

	factories := scene.NewFactories().
		Register("ticker", scene.Type[Ticker]()).
		Register("reporter", scene.Type[Reporter]()).
		Register("console_sink", func(decode func(v any) error) (any, error) {
			s := &ConsoleSink{out: out}
			if err := decode(s); err != nil {
				return nil, err
			}
			return s, nil
		})
	return cat, factories
}
