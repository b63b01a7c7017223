package web

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// changeMsg is one change-feed notification. Clients re-fetch /api/list on
// receipt; the feed carries no payloads.
type changeMsg struct {
	Type string `json:"type"`
	Op   string `json:"op"`
	ID   string `json:"id"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4 * 1024,
	WriteBufferSize: 4 * 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			return true
		}
		// Basic same-origin check; good enough for a localhost sync server.
		return strings.Contains(origin, "://"+strings.TrimSpace(r.Host))
	},
}

type broadcaster struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan changeMsg
}

func newBroadcaster() *broadcaster {
	return &broadcaster{clients: map[*websocket.Conn]chan changeMsg{}}
}

func (b *broadcaster) add(conn *websocket.Conn) chan changeMsg {
	ch := make(chan changeMsg, 16)
	b.mu.Lock()
	b.clients[conn] = ch
	b.mu.Unlock()
	return ch
}

func (b *broadcaster) remove(conn *websocket.Conn) {
	b.mu.Lock()
	if ch, ok := b.clients[conn]; ok {
		delete(b.clients, conn)
		close(ch)
	}
	b.mu.Unlock()
}

// broadcast fans out to every client; slow clients drop messages instead of
// blocking the mutation path.
func (b *broadcaster) broadcast(msg changeMsg) {
	b.mu.Lock()
	for _, ch := range b.clients {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if !s.checkInvite(w, r) {
		return
	}
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	ch := s.bc.add(conn)
	defer s.bc.remove(conn)

	// Reader goroutine: we ignore client messages but need to notice closes.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
