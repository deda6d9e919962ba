// Package session discovers recorded session logs and computes per-session
// statistics over their message streams.
package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/itsderek23/subtle/internal/transcript"
)

// LogFile is one recorded session: a JSONL transcript inside an
// encoded-project directory.
type LogFile struct {
	Path       string `json:"path"`
	ProjectDir string `json:"project_dir"`

	// ModTime orders sessions most-recent-first in listings.
	ModTime int64 `json:"-"`
}

// DefaultProjectsDir returns the standard session log location.
func DefaultProjectsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "projects")
}

// All finds every session log under projectsDir, most recently modified
// first. Hidden project directories and hidden files are skipped. A missing
// directory yields an empty list, not an error.
func All(projectsDir string) []LogFile {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil
	}

	var sessions []LogFile
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		projectDir := filepath.Join(projectsDir, entry.Name())

		matches, _ := filepath.Glob(filepath.Join(projectDir, "*.jsonl"))
		for _, logPath := range matches {
			if strings.HasPrefix(filepath.Base(logPath), ".") {
				continue
			}
			lf := LogFile{Path: logPath, ProjectDir: projectDir}
			if stat, err := os.Stat(logPath); err == nil {
				lf.ModTime = stat.ModTime().UnixNano()
			}
			sessions = append(sessions, lf)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].ModTime > sessions[j].ModTime
	})
	return sessions
}

// FromID locates the session log with the given id, or nil when absent.
func FromID(projectsDir, sessionID string) *LogFile {
	entries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		logPath := filepath.Join(projectsDir, entry.Name(), sessionID+".jsonl")
		if _, err := os.Stat(logPath); err == nil {
			return &LogFile{Path: logPath, ProjectDir: filepath.Join(projectsDir, entry.Name())}
		}
	}
	return nil
}

// DecodeProjectPath reverses the dash encoding of project directory names:
// "-Users-derek-projects-subtle" becomes "/Users/derek/projects/subtle".
func DecodeProjectPath(encoded string) string {
	if strings.HasPrefix(encoded, "-") {
		encoded = "/" + encoded[1:]
	}
	return strings.ReplaceAll(encoded, "-", "/")
}

// SessionID is the log file's basename without extension.
func (f LogFile) SessionID() string {
	return strings.TrimSuffix(filepath.Base(f.Path), ".jsonl")
}

// ProjectName is the last segment of the decoded project path.
func (f LogFile) ProjectName() string {
	parts := strings.Split(filepath.Base(f.ProjectDir), "-")
	return parts[len(parts)-1]
}

// ProjectPath is the decoded absolute path the session ran in.
func (f LogFile) ProjectPath() string {
	return DecodeProjectPath(filepath.Base(f.ProjectDir))
}

// Messages parses the session's full message stream in index order.
func (f LogFile) Messages() ([]transcript.Message, error) {
	return transcript.NewParser().ParseFile(f.Path)
}
