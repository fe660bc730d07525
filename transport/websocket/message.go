package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	ActionConnect = "game:connect"
	ActionTurn    = "game:turn"
	ActionRestart = "game:restart"
	ActionState   = "game:state"
	ActionNotify  = "game:notify"
	ActionError   = "error"

	writeWait = 10 * time.Second
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Game    *entity.Game `json:"game,omitempty"`
	Status  string       `json:"status,omitempty"`
	Cell    *int         `json:"cell,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// connection wraps a socket with the lock every writer must hold.
type connection struct {
	conn *websocket.Conn

	writeMutex sync.Mutex

	// gameID and screen are only touched by the read loop of this connection.
	gameID string
	screen screen
}

func newConnection(conn *websocket.Conn) *connection {
	return &connection{conn: conn}
}

func (that *connection) send(action string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return that.write(websocket.TextMessage, Message{Action: action, Payload: body})
}

func (that *connection) ping() error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	return that.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (that *connection) write(messageType int, message Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteMessage(messageType, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
