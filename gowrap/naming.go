package gowrap

import (
	"reflect"
	"strings"
	"unicode"
)

// Namespace converts a Go import path to a metaobject namespace.
// e.g., "encoding/json" → "Go::Json", "net/http" → "Go::Http",
// "strings" → "Go::Strings"
func Namespace(importPath string) string {
	if importPath == "" {
		return "Go"
	}
	parts := strings.Split(importPath, "/")
	// Only the last segment is used; versions like "v2" are skipped
	last := parts[len(parts)-1]
	if len(parts) > 1 && isVersion(last) {
		last = parts[len(parts)-2]
	}
	return "Go::" + toPascal(last)
}

func isVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// QualifiedName joins a namespace and a type name.
// e.g., namespace "Go::Http", type "Server" → "Go::Http::Server"
func QualifiedName(namespace, typeName string) string {
	return namespace + "::" + typeName
}

// SimpleName returns the last segment of a qualified name.
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "::"); i >= 0 {
		return qualified[i+2:]
	}
	return qualified
}

// TypeName returns the default qualified metaobject name of a Go type.
// Unnamed types use their Go spelling.
func TypeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer && t.Name() == "" && t.Elem().Name() != "" {
		return TypeName(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return QualifiedName(Namespace(t.PkgPath()), t.Name())
}

// MemberName converts an exported Go field or method name to a member
// name. Go uses PascalCase; members use camelCase.
// e.g., "ReadAll" → "readAll", "URL" → "url", "ID" → "id"
func MemberName(goName string) string {
	if goName == "" {
		return goName
	}
	runes := []rune(goName)
	// Lower the leading run of capitals, keeping the start of the next word
	i := 0
	for i < len(runes) && unicode.IsUpper(runes[i]) {
		i++
	}
	switch {
	case i == 0:
		return goName
	case i == 1 || i == len(runes):
		// "Read" → "read", "URL" → "url"
	default:
		// "URLPath" → "urlPath"
		i--
	}
	for j := 0; j < i; j++ {
		runes[j] = unicode.ToLower(runes[j])
	}
	return string(runes)
}

// toPascal converts a string to PascalCase.
// Handles hyphenated and underscore-separated names.
func toPascal(s string) string {
	if len(s) == 0 {
		return s
	}

	var b strings.Builder
	nextUpper := true
	for _, r := range s {
		if r == '-' || r == '_' || r == '.' {
			nextUpper = true
			continue
		}
		if nextUpper {
			b.WriteRune(unicode.ToUpper(r))
			nextUpper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
