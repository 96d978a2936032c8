package manual

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// noDescription is the placeholder for commands nobody documented; it
// triggers a warning at finalize time.
const noDescription = "(no description)"

// Example is one literal invocation with its explanation.
type Example struct {
	Invocation  string
	Explanation string
}

// Discussion is a free-form help topic attached to a command.
type Discussion struct {
	Topic string
	Body  string
}

// Section is one named block of rendered help text.
type Section struct {
	Title string
	Body  string
}

// Documentation is the authoritative description of one command,
// including its nested subcommands. It is a builder while commands
// register and an immutable value after Finalize; the transition is
// one-way and idempotent. Builder misuse is collected and surfaced as
// a BadDocumentation error when the documentation is finalized, so a
// misconfigured command fails startup rather than serving broken help.
type Documentation struct {
	name       string
	parentPath string
	callPath   string

	desc   string
	params []Parameter
	byName map[string]*Parameter
	sigs   *SignatureSet

	checks      []Check
	checkReg    CheckRegistry
	cooldown    *CooldownSpec
	concurrency *ConcurrencySpec

	declared     []string // restrictions declared on this command
	restrictions []string // declared + inherited, after propagation

	examples    []Example
	discussions []Discussion
	aliases     []string
	subcommands []*Documentation

	hidden     bool
	standalone bool

	synopsis []string
	sections []Section

	finalized bool
	finalErr  error
	errs      []error
}

// NewDocumentation starts documentation for a command with the given
// declared parameter list. Parameter order is the declaration order and
// never changes.
func NewDocumentation(name string, params ...Parameter) *Documentation {
	d := &Documentation{
		name:       name,
		callPath:   name,
		desc:       noDescription,
		params:     params,
		byName:     make(map[string]*Parameter, len(params)),
		standalone: true,
	}
	for i := range d.params {
		d.byName[d.params[i].Name] = &d.params[i]
	}
	return d
}

// Name returns the command's simple name.
func (d *Documentation) Name() string { return d.name }

// CallPath returns the full qualified invocation path, e.g. "tag add".
func (d *Documentation) CallPath() string { return d.callPath }

// Summary returns the one-line description.
func (d *Documentation) Summary() string { return d.desc }

// Params returns the declared parameter list in order.
func (d *Documentation) Params() []Parameter { return d.params }

// Subcommands returns the owned child entries.
func (d *Documentation) Subcommands() []*Documentation { return d.subcommands }

// Aliases returns the declared alias names.
func (d *Documentation) Aliases() []string { return d.aliases }

// IsHidden reports whether the command is excluded from the table of
// contents.
func (d *Documentation) IsHidden() bool { return d.hidden }

// IsStandalone reports whether the command can be invoked without a
// subcommand.
func (d *Documentation) IsStandalone() bool { return d.standalone }

// CooldownSpec returns the attached rate limit, if any.
func (d *Documentation) CooldownSpec() (CooldownSpec, bool) {
	if d.cooldown == nil {
		return CooldownSpec{}, false
	}
	return *d.cooldown, true
}

// ConcurrencySpec returns the attached concurrency cap, if any.
func (d *Documentation) ConcurrencySpec() (ConcurrencySpec, bool) {
	if d.concurrency == nil {
		return ConcurrencySpec{}, false
	}
	return *d.concurrency, true
}

// Checks returns the access-control checks attached to the command.
func (d *Documentation) Checks() []Check { return d.checks }

// Restrictions returns the restriction list; before Finalize only the
// command's own declarations, after Finalize including inherited ones.
// Check phrasing comes from the owning manual's registry once the entry
// has been added to one.
func (d *Documentation) Restrictions() []string {
	if d.finalized {
		return d.restrictions
	}
	reg := d.checkReg
	if reg == nil {
		reg = DefaultCheckRegistry()
	}
	return d.ownRestrictions(reg)
}

func (d *Documentation) mutate(f func()) *Documentation {
	if d.finalized {
		d.errs = append(d.errs, badDoc(d.callPath, "modified after finalize"))
		return d
	}
	f()
	return d
}

// Description sets the one-line description.
func (d *Documentation) Description(text string) *Documentation {
	return d.mutate(func() { d.desc = text })
}

// Argument attaches help text to a named parameter. Referencing a name
// that is not in the declared list is a programming error.
func (d *Documentation) Argument(name, help string) *Documentation {
	return d.mutate(func() {
		p, ok := d.byName[name]
		if !ok {
			d.errs = append(d.errs, badDoc(d.callPath, "argument %q does not exist", name))
			return
		}
		p.Help = help
	})
}

// ArgumentAccepts overrides the inferred type description of a named
// parameter.
func (d *Documentation) ArgumentAccepts(name string, np QuantifiedNP) *Documentation {
	return d.mutate(func() {
		p, ok := d.byName[name]
		if !ok {
			d.errs = append(d.errs, badDoc(d.callPath, "argument %q does not exist", name))
			return
		}
		p.Type = Custom(np)
		p.Accepts = np
	})
}

// Invocation attaches a description to one auto-enumerated signature,
// identified by its key (included parameter names joined by spaces).
func (d *Documentation) Invocation(key, text string) *Documentation {
	return d.mutate(func() {
		sig, ok := d.signatures().Get(key)
		if !ok {
			d.errs = append(d.errs, badDoc(d.callPath, "no invocation signature %q", key))
			return
		}
		sig.Description = text
	})
}

// HideInvocation removes one auto-enumerated signature from the
// visible syntax listing.
func (d *Documentation) HideInvocation(key string) *Documentation {
	return d.mutate(func() {
		sig, ok := d.signatures().Get(key)
		if !ok {
			d.errs = append(d.errs, badDoc(d.callPath, "no invocation signature %q", key))
			return
		}
		sig.hidden = true
	})
}

// ExampleUsage records a literal example invocation.
func (d *Documentation) ExampleUsage(invocation, explanation string) *Documentation {
	return d.mutate(func() {
		d.examples = append(d.examples, Example{Invocation: invocation, Explanation: explanation})
	})
}

// Discuss records a free-form help topic.
func (d *Documentation) Discuss(topic, body string) *Documentation {
	return d.mutate(func() {
		d.discussions = append(d.discussions, Discussion{Topic: topic, Body: body})
	})
}

// Restriction records a human-readable restriction.
func (d *Documentation) Restriction(text string) *Documentation {
	return d.mutate(func() { d.declared = append(d.declared, text) })
}

// Restrict attaches a known access-control check; its restriction text
// comes from the check registry at finalize time.
func (d *Documentation) Restrict(c Check) *Documentation {
	return d.mutate(func() { d.checks = append(d.checks, c) })
}

// Cooldown attaches a rate limit: at most rate invocations every per,
// tracked per bucket.
func (d *Documentation) Cooldown(rate int, per time.Duration, bucket Bucket) *Documentation {
	return d.mutate(func() { d.cooldown = &CooldownSpec{Rate: rate, Per: per, Bucket: bucket} })
}

// Concurrent caps simultaneous invocations per bucket.
func (d *Documentation) Concurrent(max int, bucket Bucket) *Documentation {
	return d.mutate(func() { d.concurrency = &ConcurrencySpec{Max: max, Bucket: bucket} })
}

// Hide excludes the command from the table of contents.
func (d *Documentation) Hide() *Documentation {
	return d.mutate(func() { d.hidden = true })
}

// NotStandalone marks a group command that cannot run without a
// subcommand.
func (d *Documentation) NotStandalone() *Documentation {
	return d.mutate(func() { d.standalone = false })
}

// Alias declares alternative names for the command.
func (d *Documentation) Alias(names ...string) *Documentation {
	return d.mutate(func() { d.aliases = append(d.aliases, names...) })
}

// Subcommand attaches a child entry, rewriting its call path under
// this command.
func (d *Documentation) Subcommand(child *Documentation) *Documentation {
	return d.mutate(func() {
		child.parentPath = d.callPath
		child.rebase(d.callPath)
		d.subcommands = append(d.subcommands, child)
	})
}

func (d *Documentation) rebase(parentPath string) {
	d.parentPath = parentPath
	d.callPath = parentPath + " " + d.name
	for _, sub := range d.subcommands {
		sub.rebase(d.callPath)
	}
}

// signatures enumerates the invocation signatures on first use; the
// parameter list is immutable so the result is cached.
func (d *Documentation) signatures() *SignatureSet {
	if d.sigs == nil {
		d.sigs = Enumerate(d.params)
	}
	return d.sigs
}

// resolve fills in inferred parameter descriptions and adopts the
// owning manual's check registry. Called once at registration; type
// errors fail startup.
func (d *Documentation) resolve(table TypeTable, checks CheckRegistry) error {
	d.checkReg = checks
	for i := range d.params {
		// An explicit ArgumentAccepts override already resolved the description.
		if d.params[i].Accepts != (QuantifiedNP{}) {
			continue
		}
		if err := d.params[i].resolve(d.callPath, table); err != nil {
			return err
		}
	}
	for _, sub := range d.subcommands {
		if err := sub.resolve(table, checks); err != nil {
			return err
		}
	}
	return nil
}

// ownRestrictions assembles this command's declared restrictions plus
// the text derived from its checks and limits, in a stable order.
func (d *Documentation) ownRestrictions(reg CheckRegistry) []string {
	out := make([]string, 0, len(d.declared)+len(d.checks)+2)
	out = append(out, d.declared...)
	for _, c := range d.checks {
		if f, ok := reg[c.ID]; ok {
			out = append(out, f(c))
		} else {
			out = append(out, "Restricted: "+c.ID)
		}
	}
	if d.cooldown != nil {
		out = append(out, d.cooldown.restriction())
	}
	if d.concurrency != nil {
		out = append(out, d.concurrency.restriction())
	}
	return out
}

// finalize freezes the entry: signatures are ensured, the synopsis and
// text sections are assembled, and collected builder errors surface.
// Repeated calls are no-ops returning the first result. restrictions
// must already hold the fully propagated list.
func (d *Documentation) finalize(log zerolog.Logger) error {
	if d.finalized {
		return d.finalErr
	}
	d.finalized = true

	if len(d.errs) > 0 {
		d.finalErr = errors.Join(d.errs...)
		return d.finalErr
	}
	if d.desc == noDescription {
		log.Warn().Str("command", d.callPath).Msg("command has no description")
	}

	d.synopsis = d.buildSynopsis()
	d.sections = d.buildSections()

	for _, sub := range d.subcommands {
		if err := sub.finalize(log); err != nil {
			d.finalErr = err
			return err
		}
	}
	return nil
}

func (d *Documentation) buildSynopsis() []string {
	var lines []string
	if d.standalone {
		for _, sig := range d.signatures().Visible() {
			line := d.callPath
			if ph := sig.Placeholders(); ph != "" {
				line += " " + ph
			}
			lines = append(lines, line)
		}
	}
	for _, sub := range d.subcommands {
		if !sub.hidden {
			lines = append(lines, d.callPath+" "+sub.name+" ...")
		}
	}
	return lines
}

func (d *Documentation) buildSections() []Section {
	var sections []Section
	add := func(title, body string) {
		if body != "" {
			sections = append(sections, Section{Title: title, Body: body})
		}
	}

	add("Synopsis", strings.Join(d.synopsis, "\n"))
	add("Description", d.desc)

	var syntax []string
	if d.standalone {
		for _, sig := range d.signatures().Visible() {
			line := "`" + strings.TrimSpace(d.callPath+" "+sig.Placeholders()) + "`"
			if sig.Description != "" {
				line += "\n" + sig.Description
			}
			syntax = append(syntax, line)
		}
	}
	for _, sub := range d.subcommands {
		if !sub.hidden {
			syntax = append(syntax, "`"+d.callPath+" "+sub.name+" ...`\nSee `help "+sub.callPath+"`")
		}
	}
	add("Syntax", strings.Join(syntax, "\n"))

	var args []string
	for _, p := range d.params {
		args = append(args, "`"+p.Name+"`: "+p.describe())
	}
	add("Arguments", strings.Join(args, "\n"))
	add("Restrictions", strings.Join(d.restrictions, "\n"))

	var examples []string
	for _, ex := range d.examples {
		examples = append(examples, "`"+ex.Invocation+"`\n"+ex.Explanation)
	}
	add("Examples", strings.Join(examples, "\n"))

	var topics []string
	for _, disc := range d.discussions {
		topics = append(topics, "**"+disc.Topic+"**\n"+disc.Body)
	}
	add("Discussions", strings.Join(topics, "\n"))
	add("Aliases", strings.Join(d.aliases, ", "))

	return sections
}

// Synopsis returns the rendered synopsis lines. Valid after Finalize.
func (d *Documentation) Synopsis() []string { return d.synopsis }

// Sections returns the rendered help sections. Valid after Finalize.
func (d *Documentation) Sections() []Section { return d.sections }
