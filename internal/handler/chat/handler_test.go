package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindful/client/internal/model/chat"
	chatService "github.com/zhouzirui/mindful/client/internal/service/chat"
)

type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

// sessionBackend 应答 initChatSession 并回显消息
func sessionBackend(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var env chat.Envelope
			if err := conn.ReadJSON(&env); err != nil {
				return
			}
			var reply chat.Envelope
			switch env.Event {
			case chat.EventInitSession:
				reply, _ = chat.NewEnvelope(chat.EventInitSessionResponse, chat.InitResponse{
					SessionID: "s-1",
					Chat: []chat.Message{
						{Name: chat.IgnoreName, Role: chat.RoleUser, Parts: []chat.Part{{Text: "system prompt"}}},
						{Name: "Assistant", Role: chat.RoleModel, Parts: []chat.Part{{Text: "**Hi** there"}}},
					},
				})
			case chat.EventMessage:
				var out chat.OutgoingMessage
				_ = json.Unmarshal(env.Data, &out)
				reply, _ = chat.NewEnvelope(chat.EventMessageResponse, []chat.Message{
					out.Message,
					{Name: "Assistant", Role: chat.RoleModel, Parts: []chat.Part{{Text: "I hear you."}}},
				})
			default:
				continue
			}
			_ = conn.WriteJSON(reply)
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func setupServer(t *testing.T, token string) (*httptest.Server, *chatService.Channel) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	channel := chatService.NewChannel(sessionBackend(t), staticToken(token), log)

	r := chi.NewRouter()
	New(channel, log).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, channel
}

func validToken(t *testing.T) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": "u-1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

// readSnapshots 把SSE中的 snapshot 事件解码后送入通道
func readSnapshots(body io.Reader) <-chan View {
	out := make(chan View, 16)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var v View
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &v); err == nil {
				out <- v
			}
		}
	}()
	return out
}

func waitFor(t *testing.T, views <-chan View, match func(View) bool) View {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case v, ok := <-views:
			require.True(t, ok, "stream ended early")
			if match(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func postMessage(t *testing.T, srv *httptest.Server, text string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/chat/messages", "application/json", strings.NewReader(`{"text":"`+text+`"}`))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestStreamMountSendUnmount(t *testing.T) {
	srv, channel := setupServer(t, validToken(t))

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/chat/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	views := readSnapshots(resp.Body)
	initial := waitFor(t, views, func(v View) bool { return v.SessionID == "s-1" })
	require.Len(t, initial.Messages, 1, "ignored entries are not rendered")
	require.Equal(t, "<p><strong>Hi</strong> there</p>", initial.Messages[0].HTML)
	require.True(t, initial.CanSend)

	// 第二个页面不能同时挂载
	second, err := http.Get(srv.URL + "/chat/stream")
	require.NoError(t, err)
	second.Body.Close()
	require.Equal(t, http.StatusConflict, second.StatusCode)

	require.Equal(t, http.StatusAccepted, postMessage(t, srv, "hello").StatusCode)
	waitFor(t, views, func(v View) bool {
		return len(v.Messages) == 2 && !v.Composing && v.Messages[1].Text == "I hear you."
	})

	cancel()
	require.Eventually(t, func() bool {
		return channel.Snapshot().State == chatService.StateDisconnected
	}, 3*time.Second, 20*time.Millisecond)
}

func TestSendWithoutStreamIsRejected(t *testing.T) {
	srv, _ := setupServer(t, validToken(t))
	require.Equal(t, http.StatusConflict, postMessage(t, srv, "hello").StatusCode)
	require.Equal(t, http.StatusBadRequest, postMessage(t, srv, "  ").StatusCode)
}

func TestSendWithInvalidTokenIsSilentlyDropped(t *testing.T) {
	srv, channel := setupServer(t, "not-a-jwt")
	require.NoError(t, channel.Open(context.Background()))
	defer channel.Close()

	resp := postMessage(t, srv, "hello")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Sent bool `json:"sent"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.False(t, body.Sent)
}
