package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/internal/model/chat"
	"github.com/zhouzirui/mindful/client/internal/service/auth"
	apperrors "github.com/zhouzirui/mindful/client/pkg/errors"
	"github.com/zhouzirui/mindful/client/pkg/logger"
)

// DefaultSocketURL is the production session backend.
const DefaultSocketURL = "wss://api.malaysiabdmartshop.com/ws"

const (
	handshakeTimeout = 15 * time.Second
	writeTimeout     = 10 * time.Second
	subscriberBuffer = 8
)

var (
	ErrAlreadyOpen   = errors.New("chat channel is already open")
	ErrNotConnected  = errors.New("chat channel is not connected")
	ErrEmptyMessage  = errors.New("message is empty")
	ErrAwaitingReply = errors.New("waiting for the assistant to reply")
)

// State is the connection state of the channel.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// TokenSource yields the stored credential token, or "".
type TokenSource interface {
	Token(ctx context.Context) string
}

// Snapshot is the chat page state at one moment.
type Snapshot struct {
	State     State          `json:"state"`
	SessionID string         `json:"sessionId,omitempty"`
	Messages  []chat.Message `json:"messages"`
	Composing bool           `json:"composing"`
	CanSend   bool           `json:"canSend"`
}

// Channel is the single live connection of the chat page. It is opened when the
// page mounts and closed when it unmounts; a dropped connection stays down.
type Channel struct {
	url    string
	dialer *websocket.Dialer
	tokens TokenSource
	now    func() time.Time
	log    *logrus.Entry

	writeMu   sync.Mutex
	writeJSON func(conn *websocket.Conn, v any) error

	mu         sync.Mutex
	conn       *websocket.Conn
	gen        uint64 // 每次 Open/Close 递增
	state      State
	sessionID  string
	initAcked  bool
	transcript []chat.Message
	composing  bool
	subs       map[int]chan Snapshot
	nextSub    int
}

// NewChannel creates a disconnected channel for the given socket URL.
func NewChannel(url string, tokens TokenSource, log *logrus.Logger) *Channel {
	if strings.TrimSpace(url) == "" {
		url = DefaultSocketURL
	}
	return &Channel{
		url: url,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: handshakeTimeout,
		},
		writeJSON: (*websocket.Conn).WriteJSON,
		tokens:    tokens,
		now:       time.Now,
		log:       logger.Component(log, "chat.channel"),
		state:     StateDisconnected,
		subs:      make(map[int]chan Snapshot),
	}
}

// Open dials the backend and, when a token is stored, requests the session.
func (c *Channel) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateDisconnected {
		c.mu.Unlock()
		return ErrAlreadyOpen
	}
	c.gen++
	gen := c.gen
	c.state = StateConnecting
	c.broadcastLocked()
	c.mu.Unlock()

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.mu.Lock()
		if c.gen == gen {
			c.state = StateDisconnected
			c.broadcastLocked()
		}
		c.mu.Unlock()
		return apperrors.Wrap(apperrors.CodeNetwork, "chat is unavailable", fmt.Errorf("websocket dial failed: %w", err))
	}

	c.mu.Lock()
	if c.gen != gen {
		// 拨号期间页面已卸载，或已有新的 Open
		c.mu.Unlock()
		_ = conn.Close()
		return ErrNotConnected
	}
	c.conn = conn
	c.state = StateConnected
	c.broadcastLocked()
	c.mu.Unlock()
	c.log.WithField("url", c.url).Info("chat channel connected")

	go c.readLoop(conn)

	token := c.tokens.Token(ctx)
	if token == "" {
		c.log.Warn("no credential token, session not initialized")
		return nil
	}
	if err := c.write(conn, chat.EventInitSession, token); err != nil {
		c.log.WithError(err).Warn("send initChatSession failed")
	}
	return nil
}

// Send optimistically appends a user message and forwards it with the raw token.
// It reports false without error when the token carries no user id.
func (c *Channel) Send(ctx context.Context, text string) (bool, error) {
	if strings.TrimSpace(text) == "" {
		return false, ErrEmptyMessage
	}
	token := c.tokens.Token(ctx)
	if _, err := auth.UserID(token); err != nil {
		c.log.WithError(err).Warn("invalid token or missing userId, message dropped")
		return false, nil
	}

	c.mu.Lock()
	if c.state != StateConnected || c.conn == nil {
		c.mu.Unlock()
		return false, ErrNotConnected
	}
	if !chat.CanSend(c.transcript) {
		c.mu.Unlock()
		return false, ErrAwaitingReply
	}
	msg := chat.Message{
		Date:  c.now(),
		Name:  chat.UserName,
		Role:  chat.RoleUser,
		Parts: []chat.Part{{Text: text}},
	}
	if c.sessionID != "" {
		id := c.sessionID
		msg.ID = &id
	}
	pending := len(c.transcript)
	c.transcript = append(c.transcript, msg)
	c.composing = true
	conn := c.conn
	c.broadcastLocked()
	c.mu.Unlock()

	if err := c.write(conn, chat.EventMessage, chat.OutgoingMessage{Message: msg, UserToken: token}); err != nil {
		c.rollback(conn, pending)
		return false, apperrors.Wrap(apperrors.CodeNetwork, "message could not be sent", err)
	}
	return true, nil
}

// rollback 撤回未送达的乐观消息
func (c *Channel) rollback(conn *websocket.Conn, pending int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	if len(c.transcript) == pending+1 {
		c.transcript = c.transcript[:pending]
	}
	c.composing = false
	c.broadcastLocked()
}

// Snapshot returns the current state.
func (c *Channel) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe streams snapshots, starting with the current one. The channel is closed
// when the chat channel closes or cancel is called.
func (c *Channel) Subscribe() (<-chan Snapshot, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan Snapshot, subscriberBuffer)
	ch <- c.snapshotLocked()
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// Close releases every subscriber, closes the connection and forgets the session.
func (c *Channel) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.gen++
	c.state = StateDisconnected
	c.sessionID = ""
	c.initAcked = false
	c.transcript = nil
	c.composing = false
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
	c.writeMu.Unlock()
	c.log.Info("chat channel closed")
	return conn.Close()
}

func (c *Channel) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			// Close 之后的读错误属于正常退出
			if c.conn == conn {
				c.conn = nil
				c.state = StateDisconnected
				c.composing = false
				c.broadcastLocked()
				c.log.WithError(err).Warn("chat connection dropped")
			}
			c.mu.Unlock()
			return
		}

		var env chat.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.WithError(err).Warn("malformed frame ignored")
			continue
		}
		c.handle(conn, env)
	}
}

func (c *Channel) handle(conn *websocket.Conn, env chat.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}

	switch env.Event {
	case chat.EventInitSessionResponse:
		if c.initAcked {
			c.log.Debug("duplicate initChatSessionResponse ignored")
			return
		}
		c.initAcked = true
		var resp chat.InitResponse
		if err := json.Unmarshal(env.Data, &resp); err != nil {
			c.log.WithError(err).Warn("malformed initChatSessionResponse")
			return
		}
		if resp.Failed() {
			c.log.WithField("error", resp.Error).Error("initChatSession rejected")
			return
		}
		c.sessionID = resp.SessionID
		c.transcript = resp.Chat
		c.log.WithFields(logrus.Fields{"sessionId": resp.SessionID, "messages": len(resp.Chat)}).Info("chat session initialized")
	case chat.EventMessageResponse:
		var transcript []chat.Message
		if err := json.Unmarshal(env.Data, &transcript); err != nil {
			c.log.WithError(err).Warn("malformed messageResponse")
			return
		}
		c.transcript = transcript
		c.composing = false
	default:
		c.log.WithField("event", env.Event).Debug("unhandled event")
		return
	}
	c.broadcastLocked()
}

func (c *Channel) write(conn *websocket.Conn, event string, data any) error {
	env, err := chat.NewEnvelope(event, data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event, err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.writeJSON(conn, env)
}

func (c *Channel) snapshotLocked() Snapshot {
	messages := make([]chat.Message, len(c.transcript))
	copy(messages, c.transcript)
	return Snapshot{
		State:     c.state,
		SessionID: c.sessionID,
		Messages:  messages,
		Composing: c.composing,
		CanSend:   c.state == StateConnected && chat.CanSend(c.transcript),
	}
}

// broadcastLocked 只保留最新快照，慢订阅者丢弃旧快照。
func (c *Channel) broadcastLocked() {
	if len(c.subs) == 0 {
		return
	}
	snap := c.snapshotLocked()
	for _, sub := range c.subs {
		select {
		case sub <- snap:
		default:
			select {
			case <-sub:
			default:
			}
			sub <- snap
		}
	}
}
