package stack

import "strings"

// Split splits a runtime function symbol such as
// "github.com/a/b.(*Server).Serve.func1" into its package path
// ("github.com/a/b"), its type ("github.com/a/b.(*Server)") and its member
// name ("Serve.func1"). Plain functions and closures of plain functions keep
// the package path as their type.
func Split(function string) (packagePath string, typeName string, member string) {
	if function == "" {
		return "", "", ""
	}
	// generic type parameters may contain slashes and dots
	head := function
	if bracket := strings.IndexByte(head, '['); bracket >= 0 {
		head = head[:bracket]
	}
	slash := strings.LastIndexByte(head, '/')
	dot := strings.IndexByte(head[slash+1:], '.')
	if dot < 0 {
		return unescape(function), unescape(function), ""
	}
	packageEnd := slash + 1 + dot
	packagePath = unescape(function[:packageEnd])
	rest := function[packageEnd+1:]

	// pointer receiver: pkg.(*T).M
	if strings.HasPrefix(rest, "(") {
		if end := strings.IndexByte(rest, ')'); end >= 0 && end+1 < len(rest) && rest[end+1] == '.' {
			return packagePath, packagePath + "." + rest[:end+1], rest[end+2:]
		}
		return packagePath, packagePath, rest
	}

	// value receiver: pkg.T.M, unless the second element is a closure
	if end := indexOutsideBrackets(rest, '.'); end > 0 {
		if next := rest[end+1:]; !isClosure(next) {
			return packagePath, packagePath + "." + rest[:end], next
		}
	}
	return packagePath, packagePath, rest
}

// isClosure reports whether the symbol element names an anonymous function
// ("func1", "1", "gowrap2") or is empty ("glob..func1").
func isClosure(element string) bool {
	if element == "" || element[0] == '.' {
		return true
	}
	if element[0] >= '0' && element[0] <= '9' {
		return true
	}
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if digits, ok := strings.CutPrefix(element, prefix); ok && digits != "" && digits[0] >= '0' && digits[0] <= '9' {
			return true
		}
	}
	return false
}

func indexOutsideBrackets(value string, target byte) int {
	depth := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '[':
			depth++
		case ']':
			depth--
		case target:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func unescape(value string) string {
	if !strings.Contains(value, "%2e") {
		return value
	}
	return strings.ReplaceAll(value, "%2e", ".")
}
