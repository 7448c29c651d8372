package inmemory

import (
	"log/slog"
	"sync"

	"github.com/myvideo/server/internal/repository/connection"
	"golang.org/x/exp/maps"
)

// entry serializes writes: a websocket connection supports one concurrent writer.
type entry struct {
	conn connection.Conn
	mu   sync.Mutex
}

type repo struct {
	connList map[connection.Conn]string
	idList   map[string]*entry
	mu       sync.RWMutex
	logger   *slog.Logger
}

func NewRepo(logger *slog.Logger) *repo {
	return &repo{
		connList: make(map[connection.Conn]string),
		idList:   make(map[string]*entry),
		logger:   logger,
	}
}

func (r *repo) Add(conn connection.Conn, sessionID string) error {
	funcName := "connection.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug(funcName, "session_id", sessionID)
	if _, ok := r.connList[conn]; ok {
		return connection.ErrAlreadyExists
	}
	if _, ok := r.idList[sessionID]; ok {
		return connection.ErrAlreadyExists
	}

	r.connList[conn] = sessionID
	r.idList[sessionID] = &entry{conn: conn}

	return nil
}

func (r *repo) RemoveBySessionID(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.idList[sessionID]
	if !ok {
		return connection.ErrNotFound
	}

	delete(r.connList, e.conn)
	delete(r.idList, sessionID)

	return nil
}

// SessionIDs lists the sessions with a registered connection.
func (r *repo) SessionIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.idList)
}

// WriteJSON writes v to the connection of sessionID.
func (r *repo) WriteJSON(sessionID string, v any) error {
	r.mu.RLock()
	e, ok := r.idList[sessionID]
	r.mu.RUnlock()
	if !ok {
		return connection.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.conn.WriteJSON(v)
}

// CloseAll closes and forgets every registered connection.
func (r *repo) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for sessionID, e := range r.idList {
		if err := e.conn.Close(); err != nil {
			r.logger.Debug("failed to close connection", "session_id", sessionID, "error", err)
		}
	}

	r.connList = make(map[connection.Conn]string)
	r.idList = make(map[string]*entry)
}
