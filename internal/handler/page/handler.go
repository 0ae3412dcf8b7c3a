package page

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindful/client/internal/model/resource"
	"github.com/zhouzirui/mindful/client/pkg/utils"
)

// Authenticator answers whether a credential token is present.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// Link is a navigation target. Method is set when the target is not a plain GET.
type Link struct {
	Label  string `json:"label"`
	To     string `json:"to"`
	Method string `json:"method,omitempty"`
}

// Feature is a home page card.
type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	To          string `json:"to"`
}

// Handler 首页、导航与资源页
type Handler struct {
	auth      Authenticator
	resources resource.Store
}

// New 创建页面处理器
func New(auth Authenticator, resources resource.Store) *Handler {
	return &Handler{auth: auth, resources: resources}
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleHome)
	r.Get("/nav", h.handleNav)
	r.Get("/resources", h.handleResources)
	r.Get("/resources/{id}", h.handleResource)
}

// Nav returns the navigation links; feature pages are only listed when authenticated.
func Nav(authenticated bool) []Link {
	links := []Link{{Label: "MindfulAI", To: "/"}}
	if authenticated {
		links = append(links,
			Link{Label: "Chat", To: "/chat"},
			Link{Label: "Mood Tracker", To: "/mood-tracker"},
			Link{Label: "Wellbeing Plan", To: "/wellbeing-plan"},
		)
	}
	links = append(links, Link{Label: "Resources", To: "/resources"})
	if authenticated {
		return append(links, Link{Label: "Logout", To: "/auth/logout", Method: http.MethodPost})
	}
	return append(links, Link{Label: "Login", To: "/auth/login"}, Link{Label: "Sign Up", To: "/auth/signup"})
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	authed := h.auth.IsAuthenticated(r.Context())

	// 未登录时行动按钮指向登录页
	target := func(path string) string {
		if authed {
			return path
		}
		return "/auth/login"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"title":         "Your AI Mental Health Companion",
		"authenticated": authed,
		"features": []Feature{
			{Title: "AI Chat Support", Description: "Talk to our AI companion about your feelings, concerns, or just to check in.", To: "/chat"},
			{Title: "Mood Tracking", Description: "Track your emotional patterns over time to gain insights into your mental health.", To: "/mood-tracker"},
			{Title: "Wellbeing Plan", Description: "Get personalized recommendations for improving your mental health.", To: "/wellbeing-plan"},
			{Title: "Resources", Description: "Access a library of mental health resources, articles, and exercises.", To: "/resources"},
		},
		"actions": []Link{
			{Label: "Start Chatting", To: target("/chat")},
			{Label: "Track Your Mood", To: target("/mood-tracker")},
		},
		"nav":       Nav(authed),
		"emergency": resource.Emergency(),
	})
}

func (h *Handler) handleNav(w http.ResponseWriter, r *http.Request) {
	authed := h.auth.IsAuthenticated(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"authenticated": authed,
		"links":         Nav(authed),
	})
}

func (h *Handler) handleResources(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"categories": h.resources.List(),
		"emergency":  resource.Emergency(),
		"disclaimer": resource.Disclaimer,
	})
}

func (h *Handler) handleResource(w http.ResponseWriter, r *http.Request) {
	category, ok := h.resources.FindByID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "resource category not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, category)
}
