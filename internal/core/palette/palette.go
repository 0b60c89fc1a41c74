// Package palette holds the fixed color table used for workspace
// identities and the hash that maps a workspace name onto it.
package palette

// Entry is a single assignable color pair. Background and Foreground are
// "#RRGGBB" hex strings chosen for contrast.
type Entry struct {
	Name       string `json:"name"       yaml:"name"`
	Background string `json:"background" yaml:"background"`
	Foreground string `json:"foreground" yaml:"foreground"`
}

// Alpha suffixes appended to the active colors to derive the inactive
// (unfocused window) variants. A dimming convention, not a color-space
// transform.
const (
	inactiveBackgroundAlpha = "CC"
	inactiveForegroundAlpha = "AA"
)

// InactiveBackground returns the background with the inactive alpha suffix.
func (e Entry) InactiveBackground() string {
	return e.Background + inactiveBackgroundAlpha
}

// InactiveForeground returns the foreground with the inactive alpha suffix.
func (e Entry) InactiveForeground() string {
	return e.Foreground + inactiveForegroundAlpha
}

// builtin is the default palette. Order matters: hash indices are stable
// only as long as entries keep their positions.
var builtin = []Entry{
	{Name: "Scarlet", Background: "#B3344E", Foreground: "#F5E9EC"},
	{Name: "Pumpkin", Background: "#C4652A", Foreground: "#1F1408"},
	{Name: "Amber", Background: "#D9A410", Foreground: "#231B02"},
	{Name: "Olive", Background: "#7A8F3C", Foreground: "#151A06"},
	{Name: "Emerald", Background: "#2E8B57", Foreground: "#EAF6EF"},
	{Name: "Teal", Background: "#1F8A8A", Foreground: "#06282A"},
	{Name: "Cerulean", Background: "#2C7FB8", Foreground: "#EAF3FA"},
	{Name: "Cobalt", Background: "#274C8F", Foreground: "#E8EEFB"},
	{Name: "Violet", Background: "#6E4B9E", Foreground: "#F0EAF9"},
	{Name: "Magenta", Background: "#A33E8C", Foreground: "#FAEAF5"},
	{Name: "Slate", Background: "#5C6670", Foreground: "#EDF0F2"},
	{Name: "Espresso", Background: "#6B4A36", Foreground: "#F4ECE7"},
}

// Default returns a copy of the built-in palette.
func Default() []Entry {
	out := make([]Entry, len(builtin))
	copy(out, builtin)
	return out
}

// Hash computes a djb2 hash of s. Deterministic, depends only on the
// input bytes; Hash("") returns the djb2 seed 5381.
func Hash(s string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(s); i++ {
		h = h*33 + uint32(s[i])
	}
	return h
}

// IndexFor maps a workspace name onto a palette of n entries.
func IndexFor(name string, n int) int {
	return int(Hash(name) % uint32(n))
}
