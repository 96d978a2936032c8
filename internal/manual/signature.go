package manual

import "strings"

// Signature is one valid invocation shape: a subsequence of the
// command's parameter list, in original order.
type Signature struct {
	Params      []Parameter
	Description string
	hidden      bool
}

// Key returns the canonical key for a signature: the included parameter
// names joined by spaces. The empty signature has an empty key.
func (s Signature) Key() string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return strings.Join(names, " ")
}

// Placeholders renders the signature as placeholder text, e.g.
// "<user> [reason...]". Empty for the bare invocation.
func (s Signature) Placeholders() string {
	parts := make([]string, len(s.Params))
	for i, p := range s.Params {
		parts[i] = p.Placeholder()
	}
	return strings.Join(parts, " ")
}

// SignatureSet holds the enumerated signatures of one command in a
// deterministic order (depth-first, skip branch before keep branch).
type SignatureSet struct {
	order []string
	byKey map[string]*Signature
}

// Enumerate produces every valid call shape for the given parameter
// list. At each choice point an omittable head (optional, greedy, or an
// undocumented catch-all) forks into a skip branch and a keep branch;
// a required head is always kept. The walk is exponential in the number
// of omittable parameters, which command ergonomics keep small.
func Enumerate(params []Parameter) *SignatureSet {
	set := &SignatureSet{byKey: make(map[string]*Signature)}
	enumerate(params, nil, set)
	return set
}

func enumerate(queue, stack []Parameter, set *SignatureSet) {
	if len(queue) == 0 {
		set.add(stack)
		return
	}
	head, rest := queue[0], queue[1:]
	if head.omittable() {
		enumerate(rest, stack, set)
	}
	kept := make([]Parameter, len(stack), len(stack)+1)
	copy(kept, stack)
	enumerate(rest, append(kept, head), set)
}

func (set *SignatureSet) add(params []Parameter) {
	sig := &Signature{Params: params}
	key := sig.Key()
	if _, dup := set.byKey[key]; dup {
		return
	}
	set.order = append(set.order, key)
	set.byKey[key] = sig
}

// Len returns the number of enumerated signatures.
func (set *SignatureSet) Len() int {
	return len(set.order)
}

// Get returns the signature with the given key.
func (set *SignatureSet) Get(key string) (*Signature, bool) {
	sig, ok := set.byKey[key]
	return sig, ok
}

// Keys returns all signature keys in enumeration order.
func (set *SignatureSet) Keys() []string {
	keys := make([]string, len(set.order))
	copy(keys, set.order)
	return keys
}

// Visible iterates the signatures that were not hidden by an
// Invocation override, in enumeration order.
func (set *SignatureSet) Visible() []*Signature {
	out := make([]*Signature, 0, len(set.order))
	for _, key := range set.order {
		if sig := set.byKey[key]; !sig.hidden {
			out = append(out, sig)
		}
	}
	return out
}
