package editor

import (
	_ "embed"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// KeyBinding binds a key and its modifiers to a named action. Shortcut
// stands for the platform command key, i.e. Ctrl or Meta. An empty Action
// removes an earlier binding of the same key.
type KeyBinding struct {
	Key      string `yaml:"key"`
	Shortcut bool   `yaml:"shortcut"`
	Shift    bool   `yaml:"shift"`
	Alt      bool   `yaml:"alt"`
	Action   string `yaml:"action"`
}

// KeyMap maps a key with its modifiers to an action name.
type KeyMap map[KeyBinding]string

//go:embed keybindings.yml
var defaultKeyBindingsYaml []byte

var defaultKeyBindings = loadDefaultKeyBindings()

func loadDefaultKeyBindings() []KeyBinding {
	var ret []KeyBinding
	if err := yaml.Unmarshal(defaultKeyBindingsYaml, &ret); err != nil {
		panic(fmt.Errorf("failed to unmarshal keybindings: %w", err))
	}
	return ret
}

// DefaultKeyBindings returns a copy of the built-in key bindings.
func DefaultKeyBindings() []KeyBinding {
	return append([]KeyBinding(nil), defaultKeyBindings...)
}

// NewKeyMap builds the key map from the built-in bindings followed by the
// custom ones. A later binding of the same key replaces the earlier one.
func NewKeyMap(custom []KeyBinding) KeyMap {
	ret := KeyMap{}
	for _, b := range append(DefaultKeyBindings(), custom...) {
		action := b.Action
		b.Action = ""
		if action == "" {
			delete(ret, b)
			continue
		}
		ret[b] = action
	}
	return ret
}

// Lookup returns the action bound to the key event.
func (k KeyMap) Lookup(e KeyEvent) (string, bool) {
	action, ok := k[KeyBinding{Key: e.Code, Shortcut: e.Mods.Command(), Shift: e.Mods.Shift, Alt: e.Mods.Alt}]
	return action, ok
}

// Validate checks that the binding names a key.
func (b KeyBinding) Validate() error {
	return validation.ValidateStruct(&b, validation.Field(&b.Key, validation.Required))
}
