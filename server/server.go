// Package server streams simulation frames to a browser over a websocket.
//
// Protocol: the client sends model.Msg requests ("env" with a JSON overlay of
// model.Params, "start", "stop", "history") and receives "envSet",
// "started", "frame", "stopped", "finished", "history" and "error" replies.
package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"schrodinger/model"
)

// websocket 设置
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	params   model.Params
}

func NewServer(addr string, upgrader websocket.Upgrader, params model.Params) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		params:   params,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade failed")
		return
	}
	log.WithField("remote", conn.RemoteAddr().String()).Info("client connected")

	hub := NewHub(s.params)
	go writePump(conn, hub)
	go hub.handleRequest()
	readPump(conn, hub)

	hub.close()
	log.WithField("remote", conn.RemoteAddr().String()).Info("client disconnected")
}

// readPump forwards requests to the hub until the connection fails.
func readPump(conn *websocket.Conn, hub *Hub) {
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("failed to set read deadline")
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("read failed")
			}
			return
		}
		hub.msg <- msg
	}
}

// writePump sends replies and pings until the hub is closed.
func writePump(conn *websocket.Conn, hub *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case reply := <-hub.send:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Warn("failed to set write deadline")
			}
			if err := conn.WriteJSON(&reply); err != nil {
				log.WithError(err).Debug("write failed")
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.WithError(err).Debug("ping failed")
				return
			}
		case <-hub.done:
			return
		}
	}
}

// Handler routes /ws to the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
