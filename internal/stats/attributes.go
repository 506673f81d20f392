// Package stats defines the character attribute system consumed by
// progression as read-only modifiers, and the TDP currency it credits.
package stats

import "sort"

// Attribute value bounds. 10 is the human baseline; values outside
// [MinAttribute, MaxAttribute] are clamped on write.
const (
	MinAttribute      = 2
	MaxAttribute      = 255
	BaselineAttribute = 10
)

// Attribute names used throughout the server.
const (
	Strength     = "strength"
	Reflex       = "reflex"
	Agility      = "agility"
	Charisma     = "charisma"
	Discipline   = "discipline"
	Wisdom       = "wisdom"
	Intelligence = "intelligence"
	Stamina      = "stamina"
)

// AttributeNames lists every attribute in display order.
var AttributeNames = []string{
	Strength, Reflex, Agility, Charisma,
	Discipline, Wisdom, Intelligence, Stamina,
}

// AttributeSource is the read-only view progression takes of a character's
// attributes. The second return value reports availability: false means the
// attribute subsystem cannot answer, and the caller must fall back to its
// baseline behavior rather than treat it as an error.
type AttributeSource interface {
	Attribute(name string) (int, bool)
}

// Attributes holds a character's eight attribute scores.
type Attributes struct {
	values map[string]int
}

// NewAttributes returns attributes with every score at the human baseline.
func NewAttributes() *Attributes {
	a := &Attributes{values: make(map[string]int, len(AttributeNames))}
	for _, name := range AttributeNames {
		a.values[name] = BaselineAttribute
	}
	return a
}

// Attribute returns the named attribute's value. Unknown names report
// unavailable, which callers treat as "use the baseline".
func (a *Attributes) Attribute(name string) (int, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Set assigns an attribute value, clamped to the valid range.
// Returns false for unknown attribute names.
func (a *Attributes) Set(name string, value int) bool {
	if _, ok := a.values[name]; !ok {
		return false
	}
	if value < MinAttribute {
		value = MinAttribute
	}
	if value > MaxAttribute {
		value = MaxAttribute
	}
	a.values[name] = value
	return true
}

// Modify adds amount to an attribute and returns the new value.
// Returns 0, false for unknown attribute names.
func (a *Attributes) Modify(name string, amount int) (int, bool) {
	v, ok := a.values[name]
	if !ok {
		return 0, false
	}
	a.Set(name, v+amount)
	return a.values[name], true
}

// All returns a copy of every attribute value keyed by name.
func (a *Attributes) All() map[string]int {
	result := make(map[string]int, len(a.values))
	for name, v := range a.values {
		result[name] = v
	}
	return result
}

// Names returns the attribute names this set holds, sorted.
func (a *Attributes) Names() []string {
	names := make([]string, 0, len(a.values))
	for name := range a.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
