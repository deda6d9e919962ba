// Package search provides the substring search collaborator: it scans raw
// session logs and produces the match-id sets the filter layer consumes.
package search

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/itsderek23/subtle/internal/session"
)

// maxWorkers bounds the cross-session scan fan-out.
const maxWorkers = 8

// searchableEntry picks out the text-bearing parts of a raw log line.
type searchableEntry struct {
	Message struct {
		Content json.RawMessage `json:"content"`
	} `json:"message"`
}

type searchableBlock struct {
	Thinking string          `json:"thinking"`
	Text     string          `json:"text"`
	Name     string          `json:"name"`
	Input    json.RawMessage `json:"input"`
}

// SearchableText flattens one raw log line into the text a query is matched
// against: message text, thinking, tool names and tool inputs.
func SearchableText(line []byte) string {
	var entry searchableEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return ""
	}
	return entryText(entry)
}

func entryText(entry searchableEntry) string {
	var str string
	if err := json.Unmarshal(entry.Message.Content, &str); err == nil {
		return str
	}

	var blocks []searchableBlock
	if err := json.Unmarshal(entry.Message.Content, &blocks); err != nil {
		return ""
	}

	var parts []string
	for _, block := range blocks {
		if block.Thinking != "" {
			parts = append(parts, block.Thinking)
		}
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
		if block.Name != "" {
			parts = append(parts, block.Name)
		}
		if len(block.Input) > 0 {
			parts = append(parts, string(block.Input))
		}
	}
	return strings.Join(parts, " ")
}

// MessageIndices returns the indices of a session's messages whose
// searchable text contains the query, case-insensitively.
func MessageIndices(path, query string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	queryLower := strings.ToLower(query)
	indices := []int{}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Index positions must line up with the parser's: skip exactly the lines
	// parsing drops, which includes valid JSON that is not an object.
	index := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry searchableEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(entryText(entry)), queryLower) {
			indices = append(indices, index)
		}
		index++
	}
	return indices, scanner.Err()
}

// fileMatches reports whether any line of the log matches, stopping at the
// first hit.
func fileMatches(path, queryLower string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(SearchableText(line)), queryLower) {
			return true
		}
	}
	return false
}

// Sessions scans the given logs concurrently (at most maxWorkers at a time)
// and returns the ids of sessions containing the query, preserving input
// order.
func Sessions(ctx context.Context, sessions []session.LogFile, query string) []string {
	queryLower := strings.ToLower(query)
	hits := make([]bool, len(sessions))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i := range sessions {
		g.Go(func() error {
			hits[i] = fileMatches(sessions[i].Path, queryLower)
			return nil
		})
	}
	g.Wait()

	var ids []string
	for i, hit := range hits {
		if hit {
			ids = append(ids, sessions[i].SessionID())
		}
	}
	return ids
}
