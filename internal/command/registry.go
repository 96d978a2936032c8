package command

import (
	"fmt"
	"sort"

	"github.com/davren/server-scribe/internal/manual"
)

// entry pairs a runnable command with its generated documentation.
type entry struct {
	cmd      Command
	doc      *manual.Documentation
	category string
}

// Category implements manual.Documented.
func (e *entry) Category() string { return e.category }

// Document implements manual.Documented.
func (e *entry) Document() (*manual.Documentation, error) { return e.doc, nil }

// Registry stores commands by name and alias and builds the manual
// from them. It is an explicit instance passed around, not a package
// global, so tests and hot reloads build fresh ones.
type Registry struct {
	byName  map[string]*entry
	entries []*entry
	owners  []string
}

// NewRegistry returns an empty registry. The owner IDs feed the
// owner-only access check.
func NewRegistry(owners ...string) *Registry {
	return &Registry{byName: make(map[string]*entry), owners: owners}
}

// Register builds the command's documentation, wraps the command with
// the supplied middlewares plus the limits its documentation declares,
// and indexes it under its name and aliases. Malformed declarations
// fail here, at startup.
func (r *Registry) Register(c Command, mws ...Middleware) error {
	doc, err := buildDocumentation(c)
	if err != nil {
		return err
	}

	wrapped := Apply(c, mws...)
	if spec, ok := doc.CooldownSpec(); ok {
		wrapped = WithCooldown(spec)(wrapped)
	}
	if spec, ok := doc.ConcurrencySpec(); ok {
		wrapped = WithMaxConcurrency(spec)(wrapped)
	}
	if checks := doc.Checks(); len(checks) > 0 {
		wrapped = WithChecks(checks, r.owners...)(wrapped)
	}

	e := &entry{cmd: wrapped, doc: doc, category: c.Category()}
	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if prior, taken := r.byName[name]; taken {
			return fmt.Errorf("command name %q already registered by %q", name, prior.cmd.Name())
		}
		r.byName[name] = e
	}
	r.entries = append(r.entries, e)
	return nil
}

// OwnerSet returns the configured owner IDs as a lookup set.
func (r *Registry) OwnerSet() map[string]bool {
	set := make(map[string]bool, len(r.owners))
	for _, id := range r.owners {
		set[id] = true
	}
	return set
}

// Get returns the command registered under a name or alias.
func (r *Registry) Get(name string) (Command, bool) {
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return e.cmd, true
}

// Doc returns the documentation entry for a registered top-level
// command.
func (r *Registry) Doc(name string) (*manual.Documentation, bool) {
	e, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return e.doc, true
}

// All returns every registered command once, sorted by name.
func (r *Registry) All() []Command {
	list := make([]Command, len(r.entries))
	for i, e := range r.entries {
		list[i] = e.cmd
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// BuildManual assembles and finalizes the manual for every registered
// command, in registration order.
func (r *Registry) BuildManual(opts ...manual.Option) (*manual.Manual, error) {
	m := manual.New(opts...)
	docs := make([]manual.Documented, len(r.entries))
	for i, e := range r.entries {
		docs[i] = e
	}
	if err := m.FromCommands(docs); err != nil {
		return nil, err
	}
	if err := m.Finalize(); err != nil {
		return nil, err
	}
	return m, nil
}

// buildDocumentation derives a Documentation entry from a command's
// declared interfaces, recursing into subcommands.
func buildDocumentation(c Command) (*manual.Documentation, error) {
	var params []manual.Parameter
	if pp, ok := c.(ParamProvider); ok {
		params = pp.Params()
	}
	doc := manual.NewDocumentation(c.Name(), params...)
	if c.Description() != "" {
		doc.Description(c.Description())
	}
	if aliases := c.Aliases(); len(aliases) > 0 {
		doc.Alias(aliases...)
	}
	if h, ok := c.(HiddenMarker); ok && h.Hidden() {
		doc.Hide()
	}
	if sp, ok := c.(SubcommandProvider); ok {
		for _, sub := range sp.Subcommands() {
			subDoc, err := buildDocumentation(sub)
			if err != nil {
				return nil, err
			}
			doc.Subcommand(subDoc)
		}
	}
	if dp, ok := c.(DocProvider); ok {
		dp.Document(doc)
	}
	return doc, nil
}
