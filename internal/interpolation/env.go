package interpolation

import (
	"maps"
	"os"
	"strings"
)

// Env is a snapshot of environment variables.
type Env map[string]string

// EnvFromOS snapshots the current process environment.
func EnvFromOS() Env {
	return EnvFromList(os.Environ())
}

// EnvFromList builds an Env from KEY=value entries. Entries without '=' are
// ignored; a later duplicate key wins.
func EnvFromList(list []string) Env {
	env := make(Env, len(list))
	for _, entry := range list {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = value
	}
	return env
}

// Lookup returns the value of key and whether it is defined. A variable
// defined as empty is defined.
func (e Env) Lookup(key string) (string, bool) {
	value, ok := e[key]
	return value, ok
}

// Clone returns an independent copy of the snapshot.
func (e Env) Clone() Env {
	if e == nil {
		return Env{}
	}
	return maps.Clone(e)
}
