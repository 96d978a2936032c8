// Package manual is the command documentation engine: it infers
// human-readable argument descriptions from declared parameter types,
// enumerates every valid way a command can be invoked, assembles
// per-command help sections, and indexes the whole command tree for
// lookup with fuzzy suggestions.
//
// Everything in this package runs during single-threaded startup and is
// read-only after Finalize; finalized values are safe to share across
// handlers without locking.
package manual

import "strings"

// TypeTag identifies one recognized argument type. The set is closed:
// hosts extend the behavior by registering descriptions in a TypeTable,
// not by inventing tags at runtime.
type TypeTag string

const (
	TypeString   TypeTag = "string"
	TypeInt      TypeTag = "int"
	TypeFloat    TypeTag = "float"
	TypeBool     TypeTag = "bool"
	TypeUser     TypeTag = "user"
	TypeMember   TypeTag = "member"
	TypeChannel  TypeTag = "channel"
	TypeRole     TypeTag = "role"
	TypeEmote    TypeTag = "emote"
	TypeMessage  TypeTag = "message"
	TypeDuration TypeTag = "duration"
	TypeURL      TypeTag = "url"
)

// QuantifiedNP is a structured noun phrase describing what an argument
// accepts. It renders in three forms: bare singular ("a whole number"),
// bare plural ("whole numbers"), and "one or more whole numbers" for
// greedy parameters. Clause, when set, qualifies every form.
type QuantifiedNP struct {
	Singular string
	Plural   string
	Clause   string
}

// NP builds a QuantifiedNP with the correct indefinite article.
func NP(noun, plural string) QuantifiedNP {
	return QuantifiedNP{Singular: article(noun) + " " + noun, Plural: plural}
}

// With returns a copy qualified by the given clause.
func (np QuantifiedNP) With(clause string) QuantifiedNP {
	np.Clause = clause
	return np
}

// One renders the singular form.
func (np QuantifiedNP) One() string {
	return np.qualify(np.Singular)
}

// Many renders the plural form.
func (np QuantifiedNP) Many() string {
	return np.qualify(np.Plural)
}

// OneOrMore renders the greedy form.
func (np QuantifiedNP) OneOrMore() string {
	return np.qualify("one or more " + np.Plural)
}

func (np QuantifiedNP) qualify(s string) string {
	if np.Clause == "" {
		return s
	}
	return s + " " + np.Clause
}

// or joins two descriptions into a textual union.
func (np QuantifiedNP) or(other QuantifiedNP) QuantifiedNP {
	return QuantifiedNP{
		Singular: np.One() + " or " + other.One(),
		Plural:   np.Many() + " or " + other.Many(),
	}
}

// consonantSoundPrefixes are vowel-letter openings pronounced with a
// consonant sound ("user", "URL", "unique", "one-time"), which take
// "a" rather than "an".
var consonantSoundPrefixes = []string{"use", "uni", "url", "one", "eu"}

func article(noun string) string {
	if noun == "" {
		return "a"
	}
	w := strings.ToLower(noun)
	for _, p := range consonantSoundPrefixes {
		if strings.HasPrefix(w, p) {
			return "a"
		}
	}
	switch w[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

// TypeTable maps recognized type tags to their descriptions. Hosts may
// clone the default table and register their own entries before any
// documentation is built; the table must not change afterwards.
type TypeTable map[TypeTag]QuantifiedNP

// DefaultTypeTable returns a fresh copy of the built-in table.
func DefaultTypeTable() TypeTable {
	t := make(TypeTable, len(defaultTable))
	for k, v := range defaultTable {
		t[k] = v
	}
	return t
}

// Register adds or replaces the description for a tag.
func (t TypeTable) Register(tag TypeTag, np QuantifiedNP) {
	t[tag] = np
}

var defaultTable = TypeTable{
	TypeString:   NP("piece of text", "pieces of text"),
	TypeInt:      NP("whole number", "whole numbers"),
	TypeFloat:    NP("number", "numbers"),
	TypeBool:     NP("yes-or-no value", "yes-or-no values"),
	TypeUser:     NP("user", "users"),
	TypeMember:   NP("server member", "server members"),
	TypeChannel:  NP("channel", "channels"),
	TypeRole:     NP("role", "roles"),
	TypeEmote:    NP("emote", "emotes"),
	TypeMessage:  NP("message link or ID", "message links or IDs"),
	TypeDuration: NP("duration", "durations").With("such as 2h30m"),
	TypeURL:      NP("URL", "URLs"),
}

// fallbackNP derives a description from a tag nobody registered, by
// splitting its camel-case name into words.
func fallbackNP(tag TypeTag) QuantifiedNP {
	words := splitWords(string(tag))
	noun := strings.Join(words, " ")
	return NP(noun, noun+"s")
}

func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		words = append(words, strings.ToLower(cur.String()))
	}
	return words
}
