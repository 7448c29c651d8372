package wsrouter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seekInput struct {
	Fraction float64 `json:"fraction"`
}

type recorder struct {
	mu     sync.Mutex
	inputs []seekInput
	types  []string
	errs   []error
}

func (r *recorder) snapshot() ([]seekInput, []string, []error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]seekInput(nil), r.inputs...), append([]string(nil), r.types...), append([]error(nil), r.errs...)
}

func serve(t *testing.T, router *WSRouter) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = router.ServeConn(context.Background(), conn)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestRouterDispatch(t *testing.T) {
	rec := &recorder{}
	router := New()
	router.Use(func(next HandlerFunc[any]) HandlerFunc[any] {
		return func(ctx context.Context, conn *websocket.Conn, input any) error {
			rec.mu.Lock()
			rec.types = append(rec.types, GetMessageTypeFromCtx(ctx))
			rec.mu.Unlock()
			return next(ctx, conn, input)
		}
	})
	router.OnError(func(_ context.Context, _ *websocket.Conn, err error) {
		rec.mu.Lock()
		rec.errs = append(rec.errs, err)
		rec.mu.Unlock()
	})
	Handle(router, "SEEK", func(_ context.Context, _ *websocket.Conn, input seekInput) error {
		rec.mu.Lock()
		rec.inputs = append(rec.inputs, input)
		rec.mu.Unlock()
		return nil
	})
	Handle(router, "FAIL", func(_ context.Context, _ *websocket.Conn, _ struct{}) error {
		return errors.New("boom")
	})

	conn := serve(t, router)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "SEEK", "payload": map[string]any{"fraction": 0.5}}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "NOPE"}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "SEEK", "payload": map[string]any{"fraction": "x"}}))
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "FAIL"}))

	assert.Eventually(t, func() bool {
		_, _, errs := rec.snapshot()
		return len(errs) == 3
	}, time.Second, 5*time.Millisecond)

	inputs, types, errs := rec.snapshot()
	assert.Equal(t, []seekInput{{Fraction: 0.5}}, inputs)
	assert.Equal(t, []string{"SEEK", "FAIL"}, types)
	assert.ErrorIs(t, errs[0], ErrUnknownMessageType)
	assert.ErrorIs(t, errs[1], ErrInvalidPayload)
	assert.EqualError(t, errs[2], "boom")
}
