package config

import (
	"cmp"
	"strconv"
	"strings"
)

// Path addresses a node in a parsed document, e.g. servers.github.args[2].
type Path []string

// Key returns a copy of p extended by a mapping key.
func (p Path) Key(key string) Path {
	return p.append(key)
}

// Index returns a copy of p extended by a sequence index.
func (p Path) Index(i int) Path {
	return p.append("[" + strconv.Itoa(i) + "]")
}

func (p Path) append(segment string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, segment)
}

func (p Path) String() string {
	var b strings.Builder
	for i, segment := range p {
		if i > 0 && !strings.HasPrefix(segment, "[") {
			b.WriteByte('.')
		}
		b.WriteString(segment)
	}
	return b.String()
}

// Compare orders paths segment by segment. Sequence indexes compare
// numerically, so args[2] sorts before args[10]; a path sorts before any
// path it is a prefix of.
func (p Path) Compare(other Path) int {
	for i := 0; i < len(p) && i < len(other); i++ {
		a, aIdx := index(p[i])
		b, bIdx := index(other[i])
		var c int
		if aIdx && bIdx {
			c = cmp.Compare(a, b)
		} else {
			c = strings.Compare(p[i], other[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p), len(other))
}

func index(segment string) (int, bool) {
	if !strings.HasPrefix(segment, "[") || !strings.HasSuffix(segment, "]") {
		return 0, false
	}
	i, err := strconv.Atoi(segment[1 : len(segment)-1])
	return i, err == nil
}
