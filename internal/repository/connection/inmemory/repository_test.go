package inmemory

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/myvideo/server/internal/repository/connection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu      sync.Mutex
	written []any
	closed  bool
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, v)
	return nil
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func TestAddAndRemove(t *testing.T) {
	r := NewRepo(slog.Default())
	conn := &fakeConn{}

	require.NoError(t, r.Add(conn, "s1"))
	assert.ErrorIs(t, r.Add(conn, "s2"), connection.ErrAlreadyExists)
	assert.ErrorIs(t, r.Add(&fakeConn{}, "s1"), connection.ErrAlreadyExists)

	require.NoError(t, r.Add(&fakeConn{}, "s2"))
	assert.ElementsMatch(t, []string{"s1", "s2"}, r.SessionIDs())

	require.NoError(t, r.RemoveBySessionID("s1"))
	assert.Equal(t, []string{"s2"}, r.SessionIDs())
	assert.ErrorIs(t, r.RemoveBySessionID("s1"), connection.ErrNotFound)

	// the connection is free to register again
	require.NoError(t, r.Add(conn, "s3"))
}

func TestWriteJSONSerialized(t *testing.T) {
	r := NewRepo(slog.Default())
	conn := &fakeConn{}
	require.NoError(t, r.Add(conn, "s1"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, r.WriteJSON("s1", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, conn.written, 50)
	assert.ErrorIs(t, r.WriteJSON("missing", 1), connection.ErrNotFound)
}

func TestCloseAll(t *testing.T) {
	r := NewRepo(slog.Default())
	a, b := &fakeConn{}, &fakeConn{}
	require.NoError(t, r.Add(a, "a"))
	require.NoError(t, r.Add(b, "b"))

	r.CloseAll()

	assert.True(t, a.closed)
	assert.True(t, b.closed)
	assert.Empty(t, r.SessionIDs())
}
