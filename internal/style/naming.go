package style

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"luaufmt/internal/config"
	"luaufmt/internal/token"
)

// Role selects which naming convention applies to an identifier.
type Role uint8

const (
	RoleNone Role = iota
	RoleVariable
	RoleMethod
	RoleType
)

// builtinTypes are never renamed in type position.
var builtinTypes = map[string]struct{}{
	"any": {}, "boolean": {}, "buffer": {}, "nil": {}, "never": {}, "number": {},
	"string": {}, "table": {}, "thread": {}, "unknown": {}, "userdata": {}, "vector": {},
}

// builtinGlobals are never renamed in variable position.
var builtinGlobals = map[string]struct{}{
	"_G": {}, "_VERSION": {}, "self": {}, "assert": {}, "bit32": {}, "buffer": {},
	"coroutine": {}, "debug": {}, "error": {}, "game": {}, "getfenv": {}, "getmetatable": {},
	"ipairs": {}, "math": {}, "next": {}, "os": {}, "pairs": {}, "pcall": {}, "print": {},
	"rawequal": {}, "rawget": {}, "rawlen": {}, "rawset": {}, "require": {}, "script": {},
	"select": {}, "setfenv": {}, "setmetatable": {}, "string": {}, "table": {}, "task": {},
	"tonumber": {}, "tostring": {}, "type": {}, "typeof": {}, "unpack": {}, "utf8": {},
	"warn": {}, "workspace": {}, "xpcall": {},
}

// ApplyRole renames ident with the convention cfg assigns to role.
func ApplyRole(cfg config.Config, role Role, ident string) string {
	switch role {
	case RoleVariable:
		if _, ok := builtinGlobals[ident]; ok {
			return ident
		}
		return ApplyCase(cfg.VariableCasing, ident)
	case RoleMethod:
		return ApplyCase(cfg.MethodCasing, ident)
	case RoleType:
		if _, ok := builtinTypes[ident]; ok {
			return ident
		}
		return ApplyCase(cfg.TypeCasing, ident)
	}
	return ident
}

// ApplyCase rewrites ident in the given convention. Leading and trailing
// underscores are kept. A result that would be a reserved word, or empty,
// falls back to ident.
func ApplyCase(conv config.NamingConvention, ident string) string {
	if conv == config.CaseNone || ident == "" {
		return ident
	}
	core := strings.Trim(ident, "_")
	if core == "" {
		return ident
	}
	prefix := ident[:len(ident)-len(strings.TrimLeft(ident, "_"))]
	suffix := ident[len(prefix)+len(core):]

	words := SplitWords(core)
	var sb strings.Builder
	for i, w := range words {
		switch conv {
		case config.CaseCamel:
			if i == 0 {
				sb.WriteString(strings.ToLower(w))
			} else {
				sb.WriteString(capitalize(w))
			}
		case config.CasePascal:
			sb.WriteString(capitalize(w))
		case config.CaseSnake:
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteString(strings.ToLower(w))
		}
	}
	out := prefix + sb.String() + suffix
	if token.IsReserved(out) {
		return ident
	}
	return out
}

// SplitWords splits an identifier at underscores and at case boundaries:
// `myVar` -> my, Var; `HTTPServer` -> HTTP, Server; `snake_case` -> snake, case.
func SplitWords(ident string) []string {
	var words []string
	runes := []rune(ident)
	start := 0
	flush := func(end int) {
		if end > start {
			words = append(words, string(runes[start:end]))
		}
	}
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' {
			flush(i)
			start = i + 1
			continue
		}
		if i == start || !unicode.IsUpper(r) {
			continue
		}
		prev := runes[i-1]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}
