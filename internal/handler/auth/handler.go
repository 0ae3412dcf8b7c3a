package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	authService "github.com/zhouzirui/mindful/client/internal/service/auth"
	"github.com/zhouzirui/mindful/client/pkg/utils"
)

// Handler 登录、注册与验证码
type Handler struct {
	svc *authService.Service
}

// New 创建认证处理器
func New(svc *authService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册认证相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Get("/login", h.handleLoginPage)
		r.Post("/login", h.handleLogin)
		r.Get("/signup", h.handleSignupPage)
		r.Post("/signup", h.handleSignup)
		r.Post("/verify-otp", h.handleVerifyOTP)
		r.Post("/logout", h.handleLogout)
	})
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"mode":          "login",
		"title":         "Welcome Back",
		"fields":        []string{"email", "password"},
		"authenticated": h.svc.IsAuthenticated(r.Context()),
		"toggle":        "/auth/signup",
	})
}

func (h *Handler) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	pending := h.svc.PendingEmail()
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"mode":        "signup",
		"fields":      []string{"email", "password", "firstName", "lastName", "phoneNumber"},
		"awaitingOtp": pending != "",
		"email":       pending,
		"toggle":      "/auth/login",
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds authService.Credentials
	if err := utils.DecodeJSON(r, &creds); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if err := h.svc.Login(r.Context(), creds); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"authenticated": true, "redirect": "/"})
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req authService.SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if err := h.svc.Signup(r.Context(), req); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":     authService.MsgSignupOK,
		"awaitingOtp": true,
	})
}

func (h *Handler) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OTP string `json:"otp"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if err := h.svc.VerifyOTP(r.Context(), payload.OTP); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message":  authService.MsgVerifyOK,
		"redirect": "/auth/login",
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"authenticated": false, "redirect": "/"})
}
