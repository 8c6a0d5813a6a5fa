package formula

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Reference is an external name a formula reads from.
type Reference struct {
	// Root is the first name of the traversal, e.g. "skill" in skill.Balance.
	Root string
	// Key is the canonical text of the whole traversal, e.g. "skill.Balance".
	Key string
}

func (r Reference) String() string { return r.Key }

// NewReference builds a Reference from an HCL traversal.
func NewReference(t hcl.Traversal) Reference {
	return Reference{Root: t.RootName(), Key: TraversalKey(t)}
}

// TraversalKey generates a stable, canonical string representation for an
// hcl.Traversal, suitable for use as a map key.
func TraversalKey(t hcl.Traversal) string {
	// e.g., skill.Balance[0].rank
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// ReferenceSink collects the references found by a dependency walk. A sink
// belongs to a single walk and is not safe for concurrent use.
type ReferenceSink struct {
	refs map[string]Reference
}

// NewReferenceSink creates an empty sink.
func NewReferenceSink() *ReferenceSink {
	return &ReferenceSink{refs: make(map[string]Reference)}
}

// Add records a reference. Adding the same key twice keeps one entry.
func (s *ReferenceSink) Add(ref Reference) {
	s.refs[ref.Key] = ref
}

// References returns the collected references sorted by key.
func (s *ReferenceSink) References() []Reference {
	out := make([]Reference, 0, len(s.refs))
	for _, ref := range s.refs {
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// VariableSink collects the variables a tracking walk bound names to.
type VariableSink struct {
	ids map[string]VariableID
}

// NewVariableSink creates an empty sink.
func NewVariableSink() *VariableSink {
	return &VariableSink{ids: make(map[string]VariableID)}
}

// Add records a variable.
func (s *VariableSink) Add(id VariableID) {
	s.ids[id.String()] = id
}

// Variables returns the collected variables sorted by their string form.
func (s *VariableSink) Variables() []VariableID {
	out := make([]VariableID, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
