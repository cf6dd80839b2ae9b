package websocketPkg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"AdvisoryAssistant/internal/api/assistant"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrClosed = errors.New("chat connection closed")

// ServerError is an error frame sent by the chat endpoint.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return "chat server: " + e.Message
}

type IChatClient interface {
	// Send delivers one message and blocks until the reply frame arrives.
	// Typing frames are reported through OnTyping when it is set.
	Send(ctx context.Context, message string) (assistant.ServerFrame, error)
	SessionID() string
	Close() error
}

type Options struct {
	SessionID    string
	OnTyping     func()
	PingInterval time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type chatClient struct {
	conn         *websocket.Conn
	mu           sync.Mutex
	sessionID    string
	onTyping     func()
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	done         chan struct{}
	closeOnce    sync.Once
}

// Dial connects to the chat websocket at rawURL, resuming opts.SessionID
// when set.
func Dial(ctx context.Context, rawURL string, opts Options) (IChatClient, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid chat url: %w", err)
	}
	if opts.SessionID != "" {
		q := u.Query()
		q.Set("session_id", opts.SessionID)
		u.RawQuery = q.Encode()
	}

	c := &chatClient{
		sessionID:    opts.SessionID,
		onTyping:     opts.OnTyping,
		pingInterval: orDefault(opts.PingInterval, 30*time.Second),
		readTimeout:  orDefault(opts.ReadTimeout, time.Minute),
		writeTimeout: orDefault(opts.WriteTimeout, 5*time.Second),
		done:         make(chan struct{}),
	}

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", u.Redacted(), err)
	}

	conn.SetPingHandler(func(appData string) error {
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
	})

	c.conn = conn
	go c.keepAlive()

	return c, nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (c *chatClient) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *chatClient) Send(ctx context.Context, message string) (assistant.ServerFrame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return assistant.ServerFrame{}, ErrClosed
	default:
	}

	payload, err := json.Marshal(assistant.ClientFrame{Message: message})
	if err != nil {
		return assistant.ServerFrame{}, err
	}

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return assistant.ServerFrame{}, err
	}

	for {
		deadline := time.Now().Add(c.readTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		_ = c.conn.SetReadDeadline(deadline)

		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return assistant.ServerFrame{}, ctxErr
			}
			if d, ok := ctx.Deadline(); ok && !time.Now().Before(d) {
				return assistant.ServerFrame{}, context.DeadlineExceeded
			}
			return assistant.ServerFrame{}, err
		}

		var frame assistant.ServerFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			return assistant.ServerFrame{}, fmt.Errorf("decode frame: %w", err)
		}

		switch frame.Type {
		case assistant.FrameTyping:
			if c.onTyping != nil {
				c.onTyping()
			}
		case assistant.FrameError:
			return frame, &ServerError{Message: frame.Error}
		case assistant.FrameReply:
			if frame.SessionID != "" {
				c.sessionID = frame.SessionID
			}
			return frame, nil
		}
	}
}

func (c *chatClient) keepAlive() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeTimeout)); err != nil {
				_ = c.Close()
				return
			}
		}
	}
}

func (c *chatClient) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(c.writeTimeout))
		err = c.conn.Close()
	})
	return err
}
