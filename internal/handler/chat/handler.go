package chat

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/internal/model/chat"
	chatService "github.com/zhouzirui/mindful/client/internal/service/chat"
	"github.com/zhouzirui/mindful/client/pkg/logger"
	"github.com/zhouzirui/mindful/client/pkg/utils"
)

const heartbeatInterval = 15 * time.Second

// View is the chat page as rendered: ignored entries dropped, text rendered to HTML.
type View struct {
	State     chatService.State `json:"state"`
	SessionID string            `json:"sessionId,omitempty"`
	Messages  []chat.View       `json:"messages"`
	Composing bool              `json:"composing"`
	CanSend   bool              `json:"canSend"`
}

func render(s chatService.Snapshot) View {
	return View{
		State:     s.State,
		SessionID: s.SessionID,
		Messages:  chat.Visible(s.Messages),
		Composing: s.Composing,
		CanSend:   s.CanSend,
	}
}

// Handler 聊天页的HTTP处理器；事件流的打开与断开即页面的挂载与卸载
type Handler struct {
	channel *chatService.Channel
	log     *logrus.Entry
}

// New 创建聊天处理器
func New(channel *chatService.Channel, log *logrus.Logger) *Handler {
	return &Handler{channel: channel, log: logger.Component(log, "chat.handler")}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/chat", func(r chi.Router) {
		r.Get("/", h.handlePage)
		r.Get("/stream", h.handleStream)
		r.Post("/messages", h.handleSend)
	})
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, render(h.channel.Snapshot()))
}

// handleStream 挂载聊天页：打开会话通道并推送快照，直到客户端断开
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	if err := h.channel.Open(ctx); err != nil {
		if errors.Is(err, chatService.ErrAlreadyOpen) {
			utils.RespondError(w, http.StatusConflict, "chat is already open elsewhere")
			return
		}
		utils.RespondAppError(w, err)
		return
	}
	defer func() {
		if err := h.channel.Close(); err != nil {
			h.log.WithError(err).Debug("close chat channel")
		}
	}()

	updates, cancel := h.channel.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	h.log.Info("chat page mounted")
	for {
		select {
		case <-ctx.Done():
			h.log.Info("chat page unmounted")
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, "snapshot", render(snap)); err != nil {
				h.log.WithError(err).Debug("write snapshot")
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	sent, err := h.channel.Send(r.Context(), payload.Text)
	switch {
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, chatService.ErrNotConnected), errors.Is(err, chatService.ErrAwaitingReply):
		utils.RespondError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		utils.RespondAppError(w, err)
		return
	}

	// 无效凭证时静默丢弃，不向用户报错
	status := http.StatusAccepted
	if !sent {
		status = http.StatusOK
	}
	utils.RespondJSON(w, status, map[string]any{
		"sent": sent,
		"chat": render(h.channel.Snapshot()),
	})
}
