package manual

// ArgType is the declared type of one parameter: a single tag, a union
// of tags, or a custom description supplied by the converter itself.
// Accepts, when set, is used only if no table entry matches.
type ArgType struct {
	Tags    []TypeTag
	Accepts *QuantifiedNP
}

// T declares a single-tag type.
func T(tag TypeTag) ArgType {
	return ArgType{Tags: []TypeTag{tag}}
}

// Union declares a type accepting any of the given tags.
func Union(tags ...TypeTag) ArgType {
	return ArgType{Tags: tags}
}

// Custom declares a converter-defined type with its own description.
func Custom(np QuantifiedNP) ArgType {
	return ArgType{Accepts: &np}
}

// Describe resolves an ArgType to its noun-phrase description.
// Resolution order: exact table match, then the type's own embedded
// description, then a textual "or" union for multi-tag types, then a
// camel-case word split of the tag name. A type with neither tags nor
// an embedded description is a configuration error.
func Describe(t ArgType, table TypeTable) (QuantifiedNP, error) {
	switch len(t.Tags) {
	case 0:
		if t.Accepts != nil {
			return *t.Accepts, nil
		}
		return QuantifiedNP{}, badDoc("", "parameter has no declared type")
	case 1:
		return describeOne(t.Tags[0], t.Accepts, table), nil
	}
	var out QuantifiedNP
	seen := make(map[string]bool)
	first := true
	for _, tag := range t.Tags {
		np := describeOne(tag, nil, table)
		if seen[np.One()] {
			continue
		}
		seen[np.One()] = true
		if first {
			out, first = np, false
			continue
		}
		out = out.or(np)
	}
	return out, nil
}

func describeOne(tag TypeTag, embedded *QuantifiedNP, table TypeTable) QuantifiedNP {
	if np, ok := table[tag]; ok {
		return np
	}
	if embedded != nil {
		return *embedded
	}
	return fallbackNP(tag)
}

// Parameter is one formal argument of a command. Constructed once at
// registration from the command's declared list and immutable after.
type Parameter struct {
	Name     string
	Type     ArgType
	Accepts  QuantifiedNP
	Greedy   bool
	Final    bool
	Optional bool
	Default  string
	Help     string
}

// Required declares a mandatory parameter.
func Required(name string, t ArgType) Parameter {
	return Parameter{Name: name, Type: t}
}

// Opt declares an omittable parameter with a default.
func Opt(name string, t ArgType, def string) Parameter {
	return Parameter{Name: name, Type: t, Optional: true, Default: def}
}

// GreedyParam declares a parameter matching zero or more repeated tokens.
func GreedyParam(name string, t ArgType) Parameter {
	return Parameter{Name: name, Type: t, Greedy: true, Optional: true}
}

// CatchAll declares a trailing parameter consuming the rest of the
// input verbatim.
func CatchAll(name string) Parameter {
	return Parameter{Name: name, Type: T(TypeString), Final: true, Optional: true}
}

// resolve validates flags and fills in the inferred description.
func (p *Parameter) resolve(command string, table TypeTable) error {
	if p.Name == "" {
		return badDoc(command, "parameter with empty name")
	}
	if p.Final && p.Greedy {
		return badDoc(command, "parameter %q is both final and greedy", p.Name)
	}
	np, err := Describe(p.Type, table)
	if err != nil {
		return badDoc(command, "parameter %q: %v", p.Name, err)
	}
	p.Accepts = np
	if p.Default != "" {
		p.Optional = true
	}
	return nil
}

// unusedCatchAll reports whether p is a catch-all nobody documented;
// such a placeholder may be freely dropped from the syntax listing.
func (p Parameter) unusedCatchAll() bool {
	return p.Final && p.Optional && p.Help == ""
}

// omittable reports whether the enumerator may skip p.
func (p Parameter) omittable() bool {
	return p.Optional || p.Greedy || p.unusedCatchAll()
}

// Placeholder renders the parameter for a synopsis or syntax line.
func (p Parameter) Placeholder() string {
	switch {
	case p.Final:
		if p.Optional {
			return "[" + p.Name + "...]"
		}
		return "<" + p.Name + "...>"
	case p.Greedy:
		return "[" + p.Name + "]..."
	case p.Optional:
		return "[" + p.Name + "]"
	}
	return "<" + p.Name + ">"
}

// describe renders the "accepts" sentence for the arguments section.
func (p Parameter) describe() string {
	var accepts string
	switch {
	case p.Greedy:
		accepts = p.Accepts.OneOrMore()
	case p.Final:
		accepts = p.Accepts.Many()
	default:
		accepts = p.Accepts.One()
	}
	s := "Accepts " + accepts
	if p.Default != "" {
		s += " (default: " + p.Default + ")"
	}
	if p.Help != "" {
		s = p.Help + "\n" + s
	}
	return s
}
