package web

import (
	"encoding/json"

	contribws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// controlMessage is one remote key press on /ws/control.
type controlMessage struct {
	Key string `json:"key"`
}

// controlReply acknowledges a controlMessage.
type controlReply struct {
	Key   string `json:"key"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// registerControl mounts the remote keyboard endpoint.
func (s *Server) registerControl(app *fiber.App) {
	app.Get("/ws/control", contribws.New(s.handleControl))
}

// handleControl reads {"key": "..."} messages and acks each one.
func (s *Server) handleControl(c *contribws.Conn) {
	s.log.Info("control client connected", "remote", c.RemoteAddr().String())
	defer s.log.Info("control client disconnected")

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := c.WriteJSON(controlReply{Error: "invalid message"}); err != nil {
				return
			}
			continue
		}

		reply := controlReply{Key: msg.Key, OK: true}
		if _, err := s.pushKey(msg.Key); err != nil {
			reply.OK, reply.Error = false, err.Error()
		}
		if err := c.WriteJSON(reply); err != nil {
			return
		}
	}
}
