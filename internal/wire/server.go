package wire

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jeffwilliams/gesturemgr/internal/debuglog"
)

// HandlerFunc receives every valid message. An error is reported back to the
// sender; the connection stays open.
type HandlerFunc func(m Message) error

// ErrorReply is sent to the peer when a message is rejected.
type ErrorReply struct {
	Error string `json:"error"`
}

type ServerOptions struct {
	// MaxMessage limits the size of a message in bytes. Zero means no limit.
	MaxMessage int64
	Logf       debuglog.Logf
}

// Server accepts websocket connections from gesture sources.
type Server struct {
	upgrader   websocket.Upgrader
	handler    HandlerFunc
	maxMessage int64
	logf       debuglog.Logf
}

func NewServer(h HandlerFunc, opts ServerOptions) *Server {
	if opts.Logf == nil {
		opts.Logf = debuglog.Discard
	}
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		handler:    h,
		maxMessage: opts.MaxMessage,
		logf:       opts.Logf,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logf(debuglog.LogCatgWire, "upgrade from %s failed: %v\n", r.RemoteAddr, err)
		return
	}
	defer conn.Close()

	s.logf(debuglog.LogCatgWire, "gesture source %s connected\n", r.RemoteAddr)
	err = s.serve(conn)
	s.logf(debuglog.LogCatgWire, "gesture source %s disconnected: %v\n", r.RemoteAddr, err)
}

func (s *Server) serve(conn *websocket.Conn) error {
	if s.maxMessage > 0 {
		conn.SetReadLimit(s.maxMessage)
	}

	for {
		typ, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		if typ != websocket.TextMessage {
			continue
		}

		m, err := Decode(buf)
		if err == nil {
			err = s.handler(m)
		}
		if err != nil {
			s.logf(debuglog.LogCatgWire, "rejected message %s: %v\n", buf, err)
			if werr := s.reply(conn, err); werr != nil {
				return werr
			}
		}
	}
}

func (s *Server) reply(conn *websocket.Conn, err error) error {
	b, _ := json.Marshal(ErrorReply{Error: err.Error()})
	return conn.WriteMessage(websocket.TextMessage, b)
}
