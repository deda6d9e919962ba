package session

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolve locates a session from a user-supplied specifier, trying the
// cheapest interpretation first: a direct path to a .jsonl log, an exact
// session id, then a unique session-id prefix. Ambiguous prefixes are an
// error rather than a guess.
func Resolve(projectsDir, spec string) (*LogFile, error) {
	if strings.HasSuffix(spec, ".jsonl") {
		if abs, err := filepath.Abs(spec); err == nil {
			for _, s := range All(projectsDir) {
				if s.Path == abs {
					lf := s
					return &lf, nil
				}
			}
		}
		return nil, fmt.Errorf("no session found at %s", spec)
	}

	if lf := FromID(projectsDir, spec); lf != nil {
		return lf, nil
	}

	var matches []LogFile
	for _, s := range All(projectsDir) {
		if strings.HasPrefix(s.SessionID(), spec) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no session matches %q", spec)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.SessionID()
		}
		return nil, fmt.Errorf("session prefix %q is ambiguous: %s", spec, strings.Join(ids, ", "))
	}
}
