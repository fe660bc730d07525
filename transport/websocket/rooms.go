package websocket

// roomNotifier delivers screen messages to every socket watching one board.
type roomNotifier struct {
	server *Server
	gameID string
}

func (that *roomNotifier) Notify(message string) {
	that.server.broadcast(that.gameID, ActionNotify, Payload{Message: message})
}

func (that *Server) join(gameID string, conn *connection) {
	that.roomsMutex.Lock()
	defer that.roomsMutex.Unlock()

	if conn.gameID != "" && conn.gameID != gameID {
		that.leaveLocked(conn)
	}

	room, ok := that.rooms[gameID]
	if !ok {
		room = make(map[*connection]struct{})
		that.rooms[gameID] = room
	}

	room[conn] = struct{}{}
	conn.gameID = gameID
}

func (that *Server) leave(conn *connection) {
	that.roomsMutex.Lock()
	defer that.roomsMutex.Unlock()

	that.leaveLocked(conn)
}

func (that *Server) leaveLocked(conn *connection) {
	room, ok := that.rooms[conn.gameID]
	if !ok {
		return
	}

	delete(room, conn)
	if len(room) == 0 {
		delete(that.rooms, conn.gameID)
	}
}

func (that *Server) roomSize(gameID string) int {
	that.roomsMutex.RLock()
	defer that.roomsMutex.RUnlock()

	return len(that.rooms[gameID])
}

func (that *Server) broadcast(gameID, action string, payload Payload) {
	log := that.logger.With("method", "broadcast", "gameID", gameID, "action", action)

	that.roomsMutex.RLock()
	conns := make([]*connection, 0, len(that.rooms[gameID]))
	for conn := range that.rooms[gameID] {
		conns = append(conns, conn)
	}
	that.roomsMutex.RUnlock()

	for _, conn := range conns {
		if err := conn.send(action, payload); err != nil {
			log.Error("failed to send message", "error", err)
		}
	}

	if len(conns) == 0 {
		log.Debug("nobody is watching the game")
	}
}
