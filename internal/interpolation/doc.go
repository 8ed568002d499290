// Package interpolation resolves {{ namespace.key }} references in
// configuration strings. Three namespaces exist: variables (defined in the
// config, may reference each other), secrets (from the secrets document) and
// env (a snapshot of the process environment).
//
// Substitution is a single textual pass: substituted values are never
// rescanned, and text that does not form a well-shaped reference (unbalanced
// braces, missing key, no dot) is left untouched.
package interpolation
