package interpolation

import (
	"regexp"
)

// Pattern for {{ namespace.key }} - whitespace allowed inside the braces and around the dot
var referencePattern = regexp.MustCompile(
	`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\.\s*([A-Za-z0-9_][A-Za-z0-9_.\-]*)\s*\}\}`,
)

// Reference is one {{ namespace.key }} occurrence.
type Reference struct {
	// Raw is the text as written, braces included.
	Raw string
	// Scope is the namespace name as written.
	Scope     string
	Namespace Namespace
	Key       string
}

func (r Reference) String() string {
	return "{{ " + r.Scope + "." + r.Key + " }}"
}

// FindReferences returns every reference in input, left to right.
func FindReferences(input string) []Reference {
	matches := referencePattern.FindAllStringSubmatch(input, -1)
	refs := make([]Reference, 0, len(matches))
	for _, submatches := range matches {
		refs = append(refs, newReference(submatches))
	}
	return refs
}

// newReference builds a Reference from [full_match, namespace, key].
func newReference(submatches []string) Reference {
	return Reference{
		Raw:       submatches[0],
		Scope:     submatches[1],
		Namespace: ParseNamespace(submatches[1]),
		Key:       submatches[2],
	}
}
