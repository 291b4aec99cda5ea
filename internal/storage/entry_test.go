package storage

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatEntry(t *testing.T) {
	e := Entry{
		Time:    time.Date(2026, 1, 2, 3, 4, 5, 999, time.Local),
		Message: "LOW WATER",
	}
	require.Equal(t, "2026/01/02 03:04:05 : LOW WATER", FormatEntry(e))
}

func TestParseEntry_RoundTrip(t *testing.T) {
	ts := time.Date(2026, 10, 17, 23, 59, 58, 0, time.Local)
	messages := []string{
		"OK",
		"",
		"LOW WATER",
		"state : WATERFILLING : 42%",
		"ünïcödé ✓",
		"2026/01/01 00:00:00 : nested",
	}
	for _, msg := range messages {
		line := FormatEntry(Entry{Time: ts, Message: msg})
		got, err := ParseEntry(line + "\n")
		require.NoError(t, err, "line %q", line)
		require.True(t, got.Time.Equal(ts), "time %v != %v", got.Time, ts)
		require.Equal(t, msg, got.Message)
		require.Equal(t, line, FormatEntry(got))
	}
}

func TestParseEntry_Malformed(t *testing.T) {
	for _, line := range []string{
		"",
		"READY",
		"2026/01/02 03:04:05 READY",
		"2026/01/02 03:04:05: READY",
		"2026-01-02 03:04:05 : READY",
		"2026/13/02 03:04:05 : READY",
	} {
		_, err := ParseEntry(line)
		require.Error(t, err, "line %q", line)
	}
}

func TestReadEntries(t *testing.T) {
	input := strings.Join([]string{
		"2026/01/02 03:04:05 : OK",
		"2026/01/02 03:04:06 : LOW WATER",
		"2026/01/02 03:04:07 : OK",
	}, "\n") + "\n"

	var got []string
	var lineNos []int
	err := ReadEntries(strings.NewReader(input), func(n int, e Entry) error {
		lineNos = append(lineNos, n)
		got = append(got, e.Message)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"OK", "LOW WATER", "OK"}, got)
	require.Equal(t, []int{1, 2, 3}, lineNos)
}

func TestReadEntries_StopsOnMalformedLine(t *testing.T) {
	input := "2026/01/02 03:04:05 : OK\ngarbage\n2026/01/02 03:04:07 : OK\n"
	calls := 0
	err := ReadEntries(strings.NewReader(input), func(int, Entry) error {
		calls++
		return nil
	})
	require.ErrorContains(t, err, "line 2")
	require.Equal(t, 1, calls)
}

func TestReadEntries_CallbackError(t *testing.T) {
	stop := errors.New("stop")
	err := ReadEntries(strings.NewReader("2026/01/02 03:04:05 : OK\n"), func(int, Entry) error {
		return stop
	})
	require.ErrorIs(t, err, stop)
}
