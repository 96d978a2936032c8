package command

import (
	"fmt"
	"strings"

	"github.com/davren/server-scribe/internal/manual"
)

// MissingArgumentError reports a required parameter absent from the
// input.
type MissingArgumentError struct {
	Param string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument %q", e.Param)
}

// TooManyArgumentsError reports leftover input no parameter consumes.
type TooManyArgumentsError struct {
	Rest string
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many arguments: %q left over", e.Rest)
}

// Args holds parsed argument values by parameter name. Greedy
// parameters may hold several values; everything else holds one.
type Args struct {
	values map[string][]string
}

// Get returns the single value of a parameter, or its default when the
// parameter was omitted.
func (a *Args) Get(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[name]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

// All returns every value captured by a greedy parameter.
func (a *Args) All(name string) []string {
	if a == nil {
		return nil
	}
	return a.values[name]
}

// Parse matches raw input text against the declared parameter list.
// Tokens bind left to right: a required parameter always takes one, an
// optional parameter takes one only when enough tokens remain for the
// required parameters after it, a greedy parameter takes everything
// not reserved downstream, and a final catch-all takes the remaining
// text verbatim. Omitted optional parameters fall back to their
// defaults.
func Parse(params []manual.Parameter, input string) (*Args, error) {
	args := &Args{values: make(map[string][]string, len(params))}
	rest := strings.TrimSpace(input)

	for i, p := range params {
		if p.Final {
			if rest != "" {
				args.values[p.Name] = []string{rest}
				rest = ""
			} else if p.Default != "" {
				args.values[p.Name] = []string{p.Default}
			} else if !p.Optional {
				return nil, &MissingArgumentError{Param: p.Name}
			}
			continue
		}

		reserved := requiredAfter(params, i)
		switch {
		case p.Greedy:
			var taken []string
			for countTokens(rest) > reserved {
				var tok string
				tok, rest = nextToken(rest)
				taken = append(taken, tok)
			}
			if len(taken) > 0 {
				args.values[p.Name] = taken
			}
		case p.Optional:
			if countTokens(rest) > reserved {
				var tok string
				tok, rest = nextToken(rest)
				args.values[p.Name] = []string{tok}
			} else if p.Default != "" {
				args.values[p.Name] = []string{p.Default}
			}
		default:
			if rest == "" {
				return nil, &MissingArgumentError{Param: p.Name}
			}
			var tok string
			tok, rest = nextToken(rest)
			args.values[p.Name] = []string{tok}
		}
	}

	if rest != "" {
		return nil, &TooManyArgumentsError{Rest: rest}
	}
	return args, nil
}

// requiredAfter counts the required parameters past index i; that many
// tokens must stay available for them.
func requiredAfter(params []manual.Parameter, i int) int {
	n := 0
	for _, p := range params[i+1:] {
		if !p.Optional && !p.Greedy {
			n++
		}
	}
	return n
}

func nextToken(s string) (token, rest string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t\n"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i:])
	}
	return s, ""
}

func countTokens(s string) int {
	return len(strings.Fields(s))
}
