package compiler

import (
	"fmt"
	"strings"
)

// dataSymbols lists the punctuation characters allowed inside a quoted
// `data` string literal, alongside ASCII letters and digits.
var dataSymbols = "!@#$%^&*()-=_+{}[];:\"|,./<>?~'\\"

var dataRegisterNames = []string{
	"v0", "v1", "v2", "v3", "v4", "v5", "v6", "v7", "v8", "v9", "va", "vb", "vc", "vd", "ve", "vf",
	"v10", "v11", "v12", "v13", "v14", "v15", "flag",
}

var otherRegisterNames = []string{"i", "mreg", "delay", "sound"}

var addressNames = []string{"prog", "g_digit", "g_alpha", "g_sym"}

var keywordNames = []string{
	"if", "alias", "loop", "data", "break", "again", "shr", "shl", "rand", "draw",
	"digit", "ascii", "goto", "call", "return", "clear", "jump", "bcd",
	"wait_for_key", "reg_store", "reg_load",
}

var macroNames = []string{"draw_digit", "draw_ascii", "read_data"}

var conditionalNames = []string{"pressed", "eq"}

var builtinGroups = []struct {
	label string
	names []string
}{
	{"data reg", dataRegisterNames},
	{"register", otherRegisterNames},
	{"keyword", keywordNames},
	{"macro", macroNames},
	{"address", addressNames},
	{"conditional", conditionalNames},
}

// checkAllBuiltins reports the label of the builtin group a name clashes
// with, or "" if it clashes with none.
func checkAllBuiltins(name string) string {
	for _, group := range builtinGroups {
		for _, candidate := range group.names {
			if candidate == name {
				return group.label
			}
		}
	}
	return ""
}

// CheckName validates a user-chosen alias/data/label name: ASCII,
// alphanumeric-or-underscore, not a builtin, and not already defined.
func CheckName(name string, defs []Definition) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range name {
		if r > 127 {
			return fmt.Sprintf("'%s' must be ASCII", name)
		}
	}
	for _, r := range name {
		if !isAlnumOrUnderscore(r) {
			return fmt.Sprintf("'%s' must only contain ASCII letters, numbers and underscore", name)
		}
	}
	if group := checkAllBuiltins(name); group != "" {
		return fmt.Sprintf("'%s' clashes with %s", name, group)
	}
	for _, def := range defs {
		if def.Name == name {
			return fmt.Sprintf("'%s' already defined as %s on line %d", name, def.DefType, def.Line)
		}
	}
	return ""
}

func isAlnumOrUnderscore(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
