package interpolation

// Namespace identifies the source a reference is resolved from.
type Namespace int

const (
	NamespaceUnknown Namespace = iota
	NamespaceVariables
	NamespaceSecrets
	NamespaceEnv
)

// ParseNamespace maps a namespace name as written in a reference to its
// Namespace. Names are case-sensitive.
func ParseNamespace(name string) Namespace {
	switch name {
	case "variables":
		return NamespaceVariables
	case "secrets":
		return NamespaceSecrets
	case "env":
		return NamespaceEnv
	default:
		return NamespaceUnknown
	}
}

func (n Namespace) String() string {
	switch n {
	case NamespaceVariables:
		return "variables"
	case NamespaceSecrets:
		return "secrets"
	case NamespaceEnv:
		return "env"
	default:
		return "unknown"
	}
}
