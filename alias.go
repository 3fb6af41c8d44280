package cooked

import "strings"

// Alias is the external alias-expansion table, keyed by the first
// whitespace-delimited token of the input plus the owning executable
// name (so "cmd.exe" and some other host process can each define an
// alias named "dir" independently).
type Alias interface {
	// MatchAndCopy looks up an alias for input's first token scoped to
	// exeName and returns the expanded text plus the number of
	// "\r\n"-separated lines it encodes. ok is false on no match.
	MatchAndCopy(input, exeName string) (expanded string, lineCount int, ok bool)

	// ClearFor removes every alias scoped to exeName.
	ClearFor(exeName string)
}

// MemoryAlias is the default in-process Alias table: a map of
// exeName -> firstToken -> expansion, with no persisted backing.
type MemoryAlias struct {
	byExe map[string]map[string]string
}

func NewMemoryAlias() *MemoryAlias {
	return &MemoryAlias{byExe: make(map[string]map[string]string)}
}

func (a *MemoryAlias) Set(exeName, token, expansion string) {
	m, ok := a.byExe[exeName]
	if !ok {
		m = make(map[string]string)
		a.byExe[exeName] = m
	}
	m[token] = expansion
}

func (a *MemoryAlias) MatchAndCopy(input, exeName string) (string, int, bool) {
	m, ok := a.byExe[exeName]
	if !ok {
		return "", 0, false
	}
	token := input
	if idx := strings.IndexAny(input, " \t"); idx >= 0 {
		token = input[:idx]
	}
	expansion, ok := m[token]
	if !ok {
		return "", 0, false
	}
	lineCount := strings.Count(expansion, "\r\n")
	if lineCount == 0 && expansion != "" {
		lineCount = 1
	}
	return expansion, lineCount, true
}

func (a *MemoryAlias) ClearFor(exeName string) {
	delete(a.byExe, exeName)
}
