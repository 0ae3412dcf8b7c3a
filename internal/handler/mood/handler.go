package mood

import (
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	moodService "github.com/zhouzirui/mindful/client/internal/service/mood"
	"github.com/zhouzirui/mindful/client/pkg/utils"
)

var errNoWizard = errors.New("mood wizard is not open")

// Handler 心情记录页：历史统计与问卷向导
type Handler struct {
	svc *moodService.Service

	mu     sync.Mutex
	wizard *moodService.Wizard
}

// New 创建心情记录处理器
func New(svc *moodService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册心情记录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/mood-tracker", func(r chi.Router) {
		r.Get("/", h.handlePage)
		r.Delete("/history", h.handleClearHistory)

		r.Post("/wizard", h.handleStart)
		r.Delete("/wizard", h.handleCancel)
		r.Post("/wizard/answer", h.handleAnswer)
		r.Post("/wizard/next", h.handleNext)
		r.Post("/wizard/previous", h.handlePrevious)
		r.Post("/wizard/edit", h.handleEdit)
		r.Post("/wizard/note", h.handleNote)
		r.Post("/wizard/submit", h.handleSubmit)
	})
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	var wizard *moodService.State
	if h.wizard != nil {
		state := h.wizard.State()
		wizard = &state
	}
	h.mu.Unlock()

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"stats":  h.svc.Stats(r.Context()),
		"wizard": wizard,
	})
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"stats": h.svc.Stats(r.Context())})
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wizard = h.svc.NewWizard()
	utils.RespondJSON(w, http.StatusCreated, h.wizard.State())
}

// handleCancel 放弃进行中的所有答案
func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.wizard != nil {
		h.wizard.Cancel()
		h.wizard = nil
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Option *int `json:"option"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if payload.Option == nil {
		utils.RespondError(w, http.StatusBadRequest, "option is required")
		return
	}
	h.step(w, func(wz *moodService.Wizard) error { return wz.Answer(*payload.Option) })
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	h.step(w, (*moodService.Wizard).Advance)
}

// handlePrevious 在第一题后退即取消整个向导
func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.wizard == nil {
		utils.RespondError(w, http.StatusConflict, errNoWizard.Error())
		return
	}
	err := h.wizard.Retreat()
	if errors.Is(err, moodService.ErrFirstStep) {
		h.wizard.Cancel()
		h.wizard = nil
		utils.RespondJSON(w, http.StatusOK, map[string]any{"cancelled": true})
		return
	}
	if err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.wizard.State())
}

func (h *Handler) handleEdit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question *int `json:"question"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	h.step(w, func(wz *moodService.Wizard) error {
		if payload.Question == nil {
			return wz.EditAll()
		}
		return wz.Edit(*payload.Question)
	})
}

func (h *Handler) handleNote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Note string `json:"note"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	h.step(w, func(wz *moodService.Wizard) error { return wz.SetNote(payload.Note) })
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.wizard == nil {
		utils.RespondError(w, http.StatusConflict, errNoWizard.Error())
		return
	}

	entry, err := h.svc.Submit(r.Context(), h.wizard)
	if err != nil {
		if errors.Is(err, moodService.ErrNotReviewing) || errors.Is(err, moodService.ErrIncomplete) {
			utils.RespondError(w, statusFor(err), err.Error())
			return
		}
		utils.RespondAppError(w, err)
		return
	}
	h.wizard = nil

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"entry": entry,
		"stats": h.svc.Stats(r.Context()),
	})
}

func (h *Handler) step(w http.ResponseWriter, fn func(*moodService.Wizard) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.wizard == nil {
		utils.RespondError(w, http.StatusConflict, errNoWizard.Error())
		return
	}
	if err := fn(h.wizard); err != nil {
		utils.RespondError(w, statusFor(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.wizard.State())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, moodService.ErrOptionOutOfRange), errors.Is(err, moodService.ErrQuestionOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}
