package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType is the type of a live message.
type MessageType string

const (
	MessageMounted MessageType = "mounted"
	MessageReload  MessageType = "reload"
	MessageError   MessageType = "error"
)

// Message is sent to browsers over the live WebSocket.
type Message struct {
	Type      MessageType `json:"type"`
	Container string      `json:"container,omitempty"`
	HTML      string      `json:"html,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// queueSize bounds the messages waiting for the writer goroutine.
const queueSize = 256

// writeWait bounds a single client write.
const writeWait = 10 * time.Second

// Hub tracks live WebSocket clients and fans messages out to them. A single
// goroutine performs every client write, in the order messages were
// broadcast.
type Hub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader

	queue     chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewHub creates an empty hub and starts its writer.
func NewHub() *Hub {
	h := &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		queue: make(chan []byte, queueSize),
		done:  make(chan struct{}),
	}
	go h.run()
	return h
}

// ServeHTTP upgrades the request and holds the connection until the client
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// NotifyMounted tells clients that html was appended to container.
func (h *Hub) NotifyMounted(container, html string) {
	h.Broadcast(Message{Type: MessageMounted, Container: container, HTML: html})
}

// NotifyReload asks clients to reload the whole document.
func (h *Hub) NotifyReload() {
	h.Broadcast(Message{Type: MessageReload})
}

// NotifyError reports a failed mount to clients.
func (h *Hub) NotifyError(errMsg string) {
	h.Broadcast(Message{Type: MessageError, Error: errMsg})
}

// Broadcast queues msg for every client. Messages are delivered in the order
// Broadcast was called. After Close, Broadcast is a no-op.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	select {
	case h.queue <- data:
	case <-h.done:
	}
}

func (h *Hub) run() {
	for {
		select {
		case data := <-h.queue:
			h.write(data)
		case <-h.done:
			return
		}
	}
}

// write sends data to every client. Clients that fail the write are dropped.
func (h *Hub) write(data []byte) {
	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(client)
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close stops the writer and closes all client connections.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

// LiveScript is injected before </body> on GET /. It appends mounted markup
// to the matching container, or reloads when it cannot find one.
const LiveScript = `<script>
(function() {
    'use strict';

    var delay = 1000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/_mount/live');

        ws.onopen = function() {
            delay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'mounted':
                    var target = msg.container ? document.querySelector(msg.container) : null;
                    if (!target) {
                        location.reload();
                        return;
                    }
                    target.insertAdjacentHTML('beforeend', msg.html);
                    break;

                case 'reload':
                    location.reload();
                    break;

                case 'error':
                    console.error('[mount]', msg.error);
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                delay = Math.min(delay * 2, 30000);
                connect();
            }, delay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
`
