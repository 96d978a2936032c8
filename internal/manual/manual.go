package manual

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// DefaultSimilarityFloor is the minimum 0..100 similarity a fuzzy
// candidate needs before Lookup offers it as a suggestion.
const DefaultSimilarityFloor = 65

const embedColor = 0x5865F2

// HelpStyle selects which sections RenderHelp includes.
type HelpStyle int

const (
	StyleNormal HelpStyle = iota
	StyleShort
	StyleFull
	StyleExamples
	StyleSignature
)

// ParseStyle maps a user-supplied style name to a HelpStyle. Unknown
// names fall back to the normal style.
func ParseStyle(s string) HelpStyle {
	switch strings.ToLower(s) {
	case "short":
		return StyleShort
	case "full":
		return StyleFull
	case "examples":
		return StyleExamples
	case "signature":
		return StyleSignature
	}
	return StyleNormal
}

func (s HelpStyle) includes(title string) bool {
	switch s {
	case StyleShort:
		return title == "Synopsis" || title == "Description"
	case StyleExamples:
		return title == "Synopsis" || title == "Examples"
	case StyleSignature:
		return title == "Synopsis" || title == "Syntax"
	case StyleFull:
		return true
	}
	return title != "Examples" && title != "Discussions"
}

// Documented is the command-tree abstraction the manual consumes: any
// command able to state its category and produce its documentation.
type Documented interface {
	Category() string
	Document() (*Documentation, error)
}

// Manual is the bot-wide command index: every Documentation entry
// reachable from the registered commands, flattened by call path, with
// alias resolution, restriction propagation, fuzzy lookup, and the
// rendered table of contents. Build it once at startup, Finalize it,
// and treat it as read-only afterwards. For hot reload, build and
// finalize a fresh Manual and swap the pointer; never mutate a
// finalized one.
type Manual struct {
	title  string
	floor  int
	table  TypeTable
	checks CheckRegistry
	log    zerolog.Logger

	entries      map[string]*Documentation
	top          []*Documentation
	sections     map[string][]*Documentation
	sectionOrder []string
	aliases      map[string]string

	tocEmbed *discordgo.MessageEmbed
	tocText  string

	finalized bool
	finalErr  error
}

// Option configures a Manual.
type Option func(*Manual)

// WithTitle sets the table-of-contents title.
func WithTitle(title string) Option {
	return func(m *Manual) { m.title = title }
}

// WithSimilarityFloor overrides the fuzzy-suggestion floor.
func WithSimilarityFloor(floor int) Option {
	return func(m *Manual) { m.floor = floor }
}

// WithTypeTable supplies an extended type-description table.
func WithTypeTable(t TypeTable) Option {
	return func(m *Manual) { m.table = t }
}

// WithCheckRegistry supplies an extended check registry.
func WithCheckRegistry(r CheckRegistry) Option {
	return func(m *Manual) { m.checks = r }
}

// WithLogger sets the logger used for finalize-time warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manual) { m.log = log }
}

// New returns an empty manual in the building state.
func New(opts ...Option) *Manual {
	m := &Manual{
		title:    "Command manual",
		floor:    DefaultSimilarityFloor,
		table:    DefaultTypeTable(),
		checks:   DefaultCheckRegistry(),
		log:      zerolog.Nop(),
		entries:  make(map[string]*Documentation),
		sections: make(map[string][]*Documentation),
		aliases:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FromCommands registers the documentation of every command in the
// iterable. Called exactly once per command tree at startup.
func (m *Manual) FromCommands(cmds []Documented) error {
	for _, c := range cmds {
		doc, err := c.Document()
		if err != nil {
			return err
		}
		if err := m.Add(c.Category(), doc); err != nil {
			return err
		}
	}
	return nil
}

// Add registers one top-level entry and indexes its subtree.
func (m *Manual) Add(category string, d *Documentation) error {
	if m.finalized {
		return badDoc(d.callPath, "registered after manual was finalized")
	}
	if err := d.resolve(m.table, m.checks); err != nil {
		return err
	}
	if err := m.index(d); err != nil {
		return err
	}
	m.top = append(m.top, d)
	if _, ok := m.sections[category]; !ok {
		m.sectionOrder = append(m.sectionOrder, category)
	}
	m.sections[category] = append(m.sections[category], d)
	return nil
}

func (m *Manual) index(d *Documentation) error {
	if _, dup := m.entries[d.callPath]; dup {
		return badDoc(d.callPath, "duplicate command registration")
	}
	m.entries[d.callPath] = d
	for _, sub := range d.subcommands {
		if err := m.index(sub); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the entry with the given canonical call path.
func (m *Manual) Get(callPath string) (*Documentation, bool) {
	d, ok := m.entries[callPath]
	return d, ok
}

// All returns every indexed entry keyed by call path.
func (m *Manual) All() map[string]*Documentation {
	return m.entries
}

// Categories returns the category names in first-seen order.
func (m *Manual) Categories() []string {
	out := make([]string, len(m.sectionOrder))
	copy(out, m.sectionOrder)
	return out
}

// CategoryEntries returns a category's top-level entries in
// registration order.
func (m *Manual) CategoryEntries(category string) []*Documentation {
	return m.sections[category]
}

// Finalize freezes the manual: restrictions propagate down the command
// tree, alias paths are registered, every entry is finalized, and the
// table of contents is rendered. Idempotent; repeated calls return the
// first result.
func (m *Manual) Finalize() error {
	if m.finalized {
		return m.finalErr
	}
	m.finalized = true

	m.propagateRestrictions()
	m.registerAliases()

	var errs []error
	for _, d := range m.top {
		if err := d.finalize(m.log); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		m.finalErr = errors.Join(errs...)
		return m.finalErr
	}

	m.tocEmbed, m.tocText = m.renderTOC()
	return nil
}

// propagateRestrictions walks the tree depth-first appending each
// ancestor's own restrictions, prefixed with the ancestor's name, to
// every descendant. The seen set keeps the walk idempotent when
// subtrees are shared.
func (m *Manual) propagateRestrictions() {
	seen := make(map[*Documentation]bool)
	var walk func(d *Documentation, inherited []string)
	walk = func(d *Documentation, inherited []string) {
		if seen[d] {
			return
		}
		seen[d] = true
		own := d.ownRestrictions(m.checks)
		d.restrictions = make([]string, 0, len(own)+len(inherited))
		d.restrictions = append(d.restrictions, own...)
		d.restrictions = append(d.restrictions, inherited...)

		passDown := make([]string, 0, len(inherited)+len(own))
		for _, r := range own {
			passDown = append(passDown, "("+d.name+") "+r)
		}
		passDown = append(passDown, inherited...)
		for _, sub := range d.subcommands {
			walk(sub, passDown)
		}
	}
	for _, d := range m.top {
		walk(d, nil)
	}
}

// registerAliases records every legal alias path: for each entry, its
// name and each declared alias concatenated with every alias path of
// its ancestors.
func (m *Manual) registerAliases() {
	var walk func(d *Documentation, prefixes []string)
	walk = func(d *Documentation, prefixes []string) {
		names := append([]string{d.name}, d.aliases...)
		var paths []string
		if len(prefixes) == 0 {
			paths = names
		} else {
			for _, prefix := range prefixes {
				for _, name := range names {
					paths = append(paths, prefix+" "+name)
				}
			}
		}
		for _, path := range paths {
			if path == d.callPath {
				continue
			}
			if prior, taken := m.aliases[path]; taken && prior != d.callPath {
				m.log.Warn().Str("alias", path).Str("kept", prior).Str("dropped", d.callPath).
					Msg("conflicting alias registration")
				continue
			}
			m.aliases[path] = d.callPath
		}
		for _, sub := range d.subcommands {
			walk(sub, paths)
		}
	}
	for _, d := range m.top {
		walk(d, nil)
	}
}

// EffectiveChecks returns the access-control checks guarding a call
// path: every ancestor's own checks followed by the entry's own, the
// order they must be enforced in. Restriction text advertises the
// inherited checks, so dispatch has to honor them too.
func (m *Manual) EffectiveChecks(callPath string) []Check {
	parts := strings.Fields(callPath)
	var checks []Check
	for i := 1; i <= len(parts); i++ {
		if d, ok := m.entries[strings.Join(parts[:i], " ")]; ok {
			checks = append(checks, d.checks...)
		}
	}
	return checks
}

// Lookup resolves a query to an entry: exact call path, then alias
// path, then fuzzy suggestion. A miss returns *NoSuchCommandError with
// the closest name above the similarity floor, if any.
func (m *Manual) Lookup(query string) (*Documentation, error) {
	q := strings.Join(strings.Fields(query), " ")
	if d, ok := m.entries[q]; ok {
		return d, nil
	}
	if canonical, ok := m.aliases[q]; ok {
		return m.entries[canonical], nil
	}

	candidates := make([]string, 0, len(m.entries)+len(m.aliases))
	for name := range m.entries {
		candidates = append(candidates, name)
	}
	for name := range m.aliases {
		candidates = append(candidates, name)
	}
	suggestion, _ := bestMatch(q, candidates, m.floor)
	return nil, &NoSuchCommandError{Query: q, Suggestion: suggestion}
}

// RenderHelp resolves a query and renders its help in the given style,
// as a rich embed and a plain-text equivalent.
func (m *Manual) RenderHelp(query string, style HelpStyle) (*discordgo.MessageEmbed, string, error) {
	d, err := m.Lookup(query)
	if err != nil {
		return nil, "", err
	}

	embed := &discordgo.MessageEmbed{
		Title: d.callPath,
		Color: embedColor,
	}
	var plain strings.Builder
	plain.WriteString(d.callPath + "\n")
	for _, sec := range d.sections {
		if !style.includes(sec.Title) {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  sec.Title,
			Value: sec.Body,
		})
		plain.WriteString("\n" + sec.Title + "\n")
		for _, line := range strings.Split(sec.Body, "\n") {
			plain.WriteString("  " + line + "\n")
		}
	}
	return embed, plain.String(), nil
}

// TOC returns the pre-rendered table of contents. Valid after Finalize.
func (m *Manual) TOC() (*discordgo.MessageEmbed, string) {
	return m.tocEmbed, m.tocText
}

func (m *Manual) renderTOC() (*discordgo.MessageEmbed, string) {
	embed := &discordgo.MessageEmbed{
		Title: m.title,
		Color: embedColor,
	}
	var plain strings.Builder
	plain.WriteString(m.title + "\n")
	for _, category := range m.sectionOrder {
		var lines, plainLines []string
		for _, d := range m.sections[category] {
			if d.hidden || !d.standalone {
				continue
			}
			lines = append(lines, "`"+d.callPath+"` - "+d.desc)
			plainLines = append(plainLines, d.callPath+" - "+d.desc)
		}
		if len(lines) == 0 {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  category,
			Value: strings.Join(lines, "\n"),
		})
		plain.WriteString("\n" + category + "\n  " + strings.Join(plainLines, "\n  ") + "\n")
	}
	return embed, plain.String()
}
