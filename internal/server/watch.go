package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Watchers only send control frames
	maxMessageSize = 512

	watchBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// watcher streams the state of one hand to a websocket client.
type watcher struct {
	conn      *websocket.Conn
	send      chan stateView
	closeOnce sync.Once
}

func (w *watcher) close() {
	w.closeOnce.Do(func() { close(w.send) })
}

// hub tracks watchers per hand id.
type hub struct {
	mu       sync.Mutex
	watchers map[string]map[*watcher]struct{}
}

func newHub() *hub {
	return &hub{watchers: make(map[string]map[*watcher]struct{})}
}

func (h *hub) add(id string, w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[id] == nil {
		h.watchers[id] = make(map[*watcher]struct{})
	}
	h.watchers[id][w] = struct{}{}
}

func (h *hub) remove(id string, w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.watchers[id][w]; ok {
		delete(h.watchers[id], w)
		if len(h.watchers[id]) == 0 {
			delete(h.watchers, id)
		}
		w.close()
	}
}

// publish sends v to every watcher of id. Watchers that cannot keep up are
// dropped.
func (h *hub) publish(id string, v stateView) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers[id] {
		select {
		case w.send <- v:
		default:
			delete(h.watchers[id], w)
			w.close()
		}
	}
}

// closeAll disconnects every watcher of id.
func (h *hub) closeAll(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for w := range h.watchers[id] {
		w.close()
	}
	delete(h.watchers, id)
}

func (h *hub) count(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.watchers[id])
}

// handleWatch upgrades to a websocket, sends the current state of the hand
// and then every state after an accepted action. The handshake runs
// without s.mu; the state is read again when the watcher registers so no
// action between the two is missed.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, _, err := s.load(r, id)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client, err := s.subscribe(r, id, conn)
	if err != nil {
		s.logger.Debug("Watched hand is gone", "hand", id, "error", err)
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "hand not found"),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	s.logger.Debug("Watcher connected", "hand", id, "total", s.watchers.count(id))
	go s.writePump(client)
	s.readPump(id, client)
}

// subscribe registers a watcher for id, queueing the current state first.
func (s *Server) subscribe(r *http.Request, id string, conn *websocket.Conn) (*watcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, res, err := s.load(r, id)
	if err != nil {
		return nil, err
	}
	client := &watcher{conn: conn, send: make(chan stateView, watchBuffer)}
	client.send <- newStateView(res)
	s.watchers.add(id, client)
	return client, nil
}

// readPump discards client messages and unregisters the watcher when the
// connection closes.
func (s *Server) readPump(id string, c *watcher) {
	defer s.watchers.remove(id, c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("Watcher read error", "hand", id, "error", err)
			}
			return
		}
	}
}

func (s *Server) writePump(c *watcher) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case v, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(v); err != nil {
				s.logger.Debug("Failed to write state", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
