package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memStorage struct {
	entries []Entry
	err     error
	closed  bool
}

func (m *memStorage) Append(e Entry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memStorage) Close() error {
	m.closed = true
	return nil
}

func TestCompositeStorage_AppendsToAll(t *testing.T) {
	a, b := &memStorage{}, &memStorage{}
	cs := NewCompositeStorage(a, b)

	require.NoError(t, cs.Append(Entry{Time: time.Now(), Message: "READY"}))
	require.Len(t, a.entries, 1)
	require.Len(t, b.entries, 1)
}

func TestCompositeStorage_PrimaryFailureIsReturned(t *testing.T) {
	failing := &memStorage{err: &LogWriteError{Path: "broken", Err: errors.New("disk full")}}
	mirror := &memStorage{}
	cs := NewCompositeStorage(failing, mirror)

	err := cs.Append(Entry{Time: time.Now(), Message: "ERRORS"})

	var lwe *LogWriteError
	require.ErrorAs(t, err, &lwe)
	require.Equal(t, "broken", lwe.Path)
	require.Len(t, mirror.entries, 1, "mirrors must still receive the entry")
}

func TestCompositeStorage_MirrorFailureIsNotReturned(t *testing.T) {
	primary := &memStorage{}
	mirror := &memStorage{err: &LogWriteError{Path: postgresPath, Err: errors.New("connection refused")}}
	cs := NewCompositeStorage(primary, mirror)

	require.NoError(t, cs.Append(Entry{Time: time.Now(), Message: "READY"}))
	require.Len(t, primary.entries, 1)
}

func TestCompositeStorage_Close(t *testing.T) {
	a, b := &memStorage{}, &memStorage{}
	require.NoError(t, NewCompositeStorage(a, b).Close())
	require.True(t, a.closed)
	require.True(t, b.closed)
}
