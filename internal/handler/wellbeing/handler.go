package wellbeing

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	assessmentModel "github.com/zhouzirui/mindful/client/internal/model/assessment"
	assessmentService "github.com/zhouzirui/mindful/client/internal/service/assessment"
	"github.com/zhouzirui/mindful/client/pkg/utils"
)

const (
	viewAssessment = "assessment"
	viewPlan       = "plan"

	msgIncomplete = "Please answer all questions before submitting."
)

// Handler 健康计划页：评估向导与个性化建议
type Handler struct {
	svc *assessmentService.Service

	mu       sync.Mutex
	wizard   *assessmentService.Wizard
	hasSaved bool
	view     string
	tips     []assessmentModel.Tip
}

// New 创建健康计划处理器
func New(svc *assessmentService.Service) *Handler {
	return &Handler{svc: svc, view: viewAssessment}
}

// RegisterRoutes 注册健康计划相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/wellbeing-plan", func(r chi.Router) {
		r.Get("/", h.handlePage)
		r.Post("/retake", h.handleRetake)
		r.Post("/assessment/answer", h.handleAnswer)
		r.Post("/assessment/next", h.handleNext)
		r.Post("/assessment/previous", h.handlePrevious)
		r.Post("/assessment/reset", h.handleReset)
		r.Post("/assessment/submit", h.handleSubmit)
	})
}

// page 返回当前视图；调用方需持有锁。
func (h *Handler) page(ctx context.Context) map[string]any {
	h.ensureWizard(ctx)
	body := map[string]any{
		"view": h.view,
		"assessment": map[string]any{
			"state":    h.wizard.State(),
			"hasSaved": h.hasSaved,
		},
	}
	if h.view == viewPlan {
		body["plan"] = assessmentService.PlanFor(h.tips)
	}
	return body
}

func (h *Handler) ensureWizard(ctx context.Context) {
	if h.wizard == nil {
		h.wizard, h.hasSaved = h.svc.Resume(ctx)
	}
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	utils.RespondJSON(w, http.StatusOK, h.page(r.Context()))
}

// handleRetake 回到评估，重新载入已保存的答案
func (h *Handler) handleRetake(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.wizard = nil
	h.view = viewAssessment
	utils.RespondJSON(w, http.StatusOK, h.page(r.Context()))
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
	h.step(w, r, func(wz *assessmentService.Wizard) error { return wz.Answer(*payload.Option) })
}

func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, (*assessmentService.Wizard).Next)
}

func (h *Handler) handlePrevious(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, (*assessmentService.Wizard).Previous)
}

// handleReset 清空向导，但不删除已保存的记录
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureWizard(r.Context())
	h.wizard.Reset()
	h.hasSaved = false
	h.view = viewAssessment
	utils.RespondJSON(w, http.StatusOK, h.page(r.Context()))
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureWizard(r.Context())

	tips, err := h.svc.Submit(r.Context(), h.wizard)
	if errors.Is(err, assessmentService.ErrIncomplete) {
		utils.RespondError(w, http.StatusConflict, msgIncomplete)
		return
	}
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	h.tips = tips
	h.hasSaved = true
	h.view = viewPlan
	utils.RespondJSON(w, http.StatusOK, h.page(r.Context()))
}

func (h *Handler) step(w http.ResponseWriter, r *http.Request, fn func(*assessmentService.Wizard) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ensureWizard(r.Context())
	if h.view != viewAssessment {
		utils.RespondError(w, http.StatusConflict, "assessment is already submitted")
		return
	}
	if err := fn(h.wizard); err != nil {
		status := http.StatusConflict
		if errors.Is(err, assessmentService.ErrOptionOutOfRange) {
			status = http.StatusBadRequest
		}
		utils.RespondError(w, status, err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.page(r.Context()))
}
