package storage

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// FormatEntry renders e as "<YYYY/MM/DD HH:MM:SS> : <message>" in local time.
func FormatEntry(e Entry) string {
	return e.Time.Local().Format(TimeLayout) + separator + e.Message
}

// ParseEntry is the inverse of FormatEntry. The message is everything after
// the first separator, so messages containing " : " survive intact.
func ParseEntry(line string) (Entry, error) {
	line = strings.TrimSuffix(line, "\n")

	prefix := len(TimeLayout) + len(separator)
	if len(line) < prefix || line[len(TimeLayout):prefix] != separator {
		return Entry{}, fmt.Errorf("malformed log entry: %q", line)
	}

	ts, err := time.ParseInLocation(TimeLayout, line[:len(TimeLayout)], time.Local)
	if err != nil {
		return Entry{}, fmt.Errorf("malformed log timestamp: %w", err)
	}
	return Entry{Time: ts, Message: line[prefix:]}, nil
}

// ReadEntries calls fn for every entry in r, in file order. lineNo is
// 1-based. Parsing stops at the first malformed line or fn error.
func ReadEntries(r io.Reader, fn func(lineNo int, e Entry) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	n := 0
	for sc.Scan() {
		n++
		e, err := ParseEntry(sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if err := fn(n, e); err != nil {
			return err
		}
	}
	return sc.Err()
}
