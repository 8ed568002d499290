package config

import (
	"fmt"
	"strings"

	"github.com/atlanticdynamic/mcpgen/internal/fancy"
	"github.com/charmbracelet/lipgloss/tree"
)

const maskedValue = "********"

// String returns a pretty-printed tree representation of the config
func (c *Config) String() string {
	return ConfigTree(c)
}

// ConfigTree renders the templated configuration. Values are shown as written,
// so references appear unresolved and no secret is ever printed.
func ConfigTree(cfg *Config) string {
	version := cfg.Version
	if version == "" {
		version = "unversioned"
	}
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render(fmt.Sprintf("MCP Config (%s)", version)))

	if name, ok := cfg.Metadata["name"]; ok {
		t.Child(fmt.Sprintf("Name: %v", name))
	}

	varsTree := fancy.BranchNode("Variables", fmt.Sprintf("(%d)", len(cfg.Variables)))
	for _, name := range SortedKeys(cfg.Variables) {
		varsTree.Child(fmt.Sprintf("%s = %s", fancy.VariableText(name), cfg.Variables[name]))
	}
	t.Child(varsTree)

	serversTree := fancy.BranchNode("Servers", fmt.Sprintf("(%d)", len(cfg.Servers)))
	for _, name := range cfg.ServerNames() {
		path := Path{KeyServers, name}
		srv, err := DecodeServer(path, cfg.Servers[name])
		if err != nil {
			serversTree.Child(fancy.ErrorText(fmt.Sprintf("%s: %v", name, err)))
			continue
		}
		serversTree.Child(srv.ToTree(name, nil, false))
	}
	t.Child(serversTree)

	return t.String()
}

// String returns a pretty-printed tree of the generated servers. Env values
// are masked, and redacted values are masked wherever they appear.
func (o *Output) String() string {
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render(
		fmt.Sprintf("MCP Servers %s", fancy.CountText(fmt.Sprintf("(%d)", len(o.MCPServers)))),
	))
	for _, name := range o.ServerNames() {
		t.Child(o.MCPServers[name].ToTree(name, o.redact, true))
	}
	return t.String()
}

// ToTree returns a tree node describing the server. A non-nil redact is
// applied to the command and every arg before display; maskEnv hides env
// values entirely.
func (s Server) ToTree(name string, redact func(string) string, maskEnv bool) *tree.Tree {
	if redact == nil {
		redact = func(v string) string { return v }
	}

	st := fancy.ServerTree(name)
	st.AddBranch(fmt.Sprintf("Command: %s", fancy.CommandText(redact(s.Command))))

	if len(s.Args) > 0 {
		args := fancy.BranchNode("Args", fmt.Sprintf("(%d)", len(s.Args)))
		for _, arg := range s.Args {
			args.Child(fancy.TruncateString(redact(arg), 80))
		}
		st.AddChild(args)
	}

	if len(s.Env) > 0 {
		env := fancy.BranchNode("Env", fmt.Sprintf("(%d)", len(s.Env)))
		for _, key := range SortedKeys(s.Env) {
			value := s.Env[key]
			if maskEnv {
				value = fancy.SecretText(maskedValue)
			}
			env.Child(fmt.Sprintf("%s=%s", key, strings.TrimSpace(value)))
		}
		st.AddChild(env)
	}

	return st.Tree()
}
