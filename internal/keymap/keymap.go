// Package keymap loads key bindings from a TOML file and resolves key
// presses to actions with scope filtering. Scopes follow the screen scopes
// reported by the router ("browse", "search", "settings", ...); a binding
// with no scopes, or the scope "*", applies everywhere.
package keymap

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Binding maps keys to one named action within the given scopes.
type Binding struct {
	Keys        []string `toml:"keys"`
	Action      string   `toml:"action"`
	Description string   `toml:"description"`
	Scopes      []string `toml:"scopes"`

	binding key.Binding
}

type keymapFile struct {
	Binding []Binding `toml:"binding"`
}

// Registry answers "does this key press mean this action here".
type Registry struct {
	bindings []Binding
}

// defaultTOML is the built-in keymap, written in the same format users
// override with.
const defaultTOML = `
[[binding]]
keys = ["ctrl+l"]
action = "open-search"
description = "open the address bar"

[[binding]]
keys = ["/"]
action = "open-search"
description = "open the address bar"
scopes = ["browse", "home"]

[[binding]]
keys = ["ctrl+t"]
action = "new-tab"
description = "open a new tab"

[[binding]]
keys = ["ctrl+j"]
action = "show-tabs"
description = "open the tab switcher"

[[binding]]
keys = ["ctrl+n"]
action = "new-private-tab"
description = "open a new private tab"

[[binding]]
keys = ["ctrl+h"]
action = "show-history"
description = "open the history panel"

[[binding]]
keys = ["ctrl+b"]
action = "show-bookmarks"
description = "open the bookmarks panel"

[[binding]]
keys = ["ctrl+o"]
action = "open-settings"
description = "open settings"

[[binding]]
keys = ["esc"]
action = "back"
description = "dismiss the current screen"
scopes = ["home", "library", "settings", "tabs"]

[[binding]]
keys = ["ctrl+c", "q"]
action = "quit"
description = "quit"
scopes = ["browse", "home"]
`

// Default returns the built-in keymap.
func Default() *Registry {
	reg, err := Parse([]byte(defaultTOML))
	if err != nil {
		// the embedded keymap is covered by tests; this is unreachable
		panic(fmt.Sprintf("keymap: default keymap invalid: %v", err))
	}
	return reg
}

// LoadFile reads a user keymap and appends it to the defaults, so user
// bindings win only by adding, never by erasing a default.
func LoadFile(path string) (*Registry, error) {
	reg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, err
	}
	user, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	reg.bindings = append(reg.bindings, user.bindings...)
	return reg, nil
}

// Parse decodes a keymap document.
func Parse(data []byte) (*Registry, error) {
	var f keymapFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	reg := &Registry{}
	for i, b := range f.Binding {
		if b.Action == "" {
			return nil, fmt.Errorf("binding %d: action is required", i+1)
		}
		if len(b.Keys) == 0 {
			return nil, fmt.Errorf("binding %q: keys are required", b.Action)
		}
		b.binding = key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(strings.Join(b.Keys, "/"), b.Description),
		)
		reg.bindings = append(reg.bindings, b)
	}
	return reg, nil
}

// IsAction reports whether msg triggers action in scope.
func (r *Registry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	for _, b := range r.bindings {
		if b.Action != action || !scopeMatch(scope, b.Scopes) {
			continue
		}
		if key.Matches(msg, b.binding) {
			return true
		}
	}
	return false
}

// Action returns the first action msg triggers in scope, or "".
func (r *Registry) Action(msg tea.KeyMsg, scope string) string {
	for _, b := range r.bindings {
		if !scopeMatch(scope, b.Scopes) {
			continue
		}
		if key.Matches(msg, b.binding) {
			return b.Action
		}
	}
	return ""
}

// Help returns bindings applicable in scope, for footer hints.
func (r *Registry) Help(scope string) []key.Binding {
	out := make([]key.Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if scopeMatch(scope, b.Scopes) {
			out = append(out, b.binding)
		}
	}
	return out
}

func scopeMatch(scope string, scopes []string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, s := range scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}
