package wire

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// Client sends gesture messages to a Server.
type Client struct {
	conn *websocket.Conn
}

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Send(m Message) error {
	b, err := Encode(m)
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Run reads error replies from the server until the connection closes.
func (c *Client) Run(onError func(reply ErrorReply)) error {
	for {
		typ, buf, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}

		if typ != websocket.TextMessage {
			continue
		}

		var reply ErrorReply
		if err := json.Unmarshal(buf, &reply); err != nil {
			continue
		}
		if onError != nil {
			onError(reply)
		}
	}
}

func (c *Client) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	c.conn.WriteMessage(websocket.CloseMessage, msg)
	return c.conn.Close()
}
