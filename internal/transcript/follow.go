package transcript

import (
	"bufio"
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/itsderek23/subtle/internal/logging"
)

// DefaultPollInterval is how often a follower checks the log for growth.
const DefaultPollInterval = 500 * time.Millisecond

// Follower tails a session log: it remembers its byte offset and parses only
// the lines appended since the last poll. Truncation resets the offset so a
// rewritten log is re-read from the start.
type Follower struct {
	path     string
	interval time.Duration
	offset   int64
	logger   *logrus.Entry
}

// NewFollower creates a follower over the given log. A non-positive interval
// falls back to DefaultPollInterval.
func NewFollower(path string, interval time.Duration) *Follower {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Follower{
		path:     path,
		interval: interval,
		logger:   logging.NewLogger("transcript.follower"),
	}
}

// Follow polls the log until ctx is done, invoking fn with each batch of
// newly appended messages. Message indices restart at zero per batch; the
// follower is a live view, not a replayable stream.
func (f *Follower) Follow(ctx context.Context, fn func([]Message)) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		batch, err := f.Poll()
		if err != nil {
			f.logger.WithError(err).Debug("Poll failed, retrying")
		} else if len(batch) > 0 {
			fn(batch)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll reads and parses any lines appended since the previous call.
func (f *Follower) Poll() ([]Message, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() < f.offset {
		f.logger.WithField("path", f.path).Debug("Log truncated, restarting from offset 0")
		f.offset = 0
	}
	if stat.Size() == f.offset {
		return nil, nil
	}

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return nil, err
	}

	// Only consume complete lines; a partially written trailing line waits
	// for the next poll.
	reader := bufio.NewReader(file)
	var messages []Message
	consumed := int64(0)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			break
		}
		consumed += int64(len(line))

		trimmed := line[:len(line)-1]
		if len(trimmed) == 0 {
			continue
		}
		msg, perr := parseMessage(trimmed)
		if perr != nil {
			f.logger.WithError(perr).Debug("Skipping malformed log line")
			continue
		}
		msg.Index = len(messages)
		messages = append(messages, msg)
	}
	f.offset += consumed

	attributeDurations(messages)
	return messages, nil
}
