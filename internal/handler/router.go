package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/internal/handler/auth"
	"github.com/zhouzirui/mindful/client/internal/handler/chat"
	"github.com/zhouzirui/mindful/client/internal/handler/mood"
	"github.com/zhouzirui/mindful/client/internal/handler/page"
	"github.com/zhouzirui/mindful/client/internal/handler/wellbeing"
	middlewarePkg "github.com/zhouzirui/mindful/client/internal/middleware"
	"github.com/zhouzirui/mindful/client/internal/model/resource"
	assessmentService "github.com/zhouzirui/mindful/client/internal/service/assessment"
	authService "github.com/zhouzirui/mindful/client/internal/service/auth"
	chatService "github.com/zhouzirui/mindful/client/internal/service/chat"
	moodService "github.com/zhouzirui/mindful/client/internal/service/mood"
	"github.com/zhouzirui/mindful/client/pkg/utils"
)

// Services 是页面依赖的核心服务。
type Services struct {
	Auth       *authService.Service
	Mood       *moodService.Service
	Assessment *assessmentService.Service
	Chat       *chatService.Channel
	Resources  resource.Store
}

// NewRouter wires the routed pages to core services.
func NewRouter(svcs Services, log *logrus.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	page.New(svcs.Auth, svcs.Resources).RegisterRoutes(r)
	auth.New(svcs.Auth).RegisterRoutes(r)
	mood.New(svcs.Mood).RegisterRoutes(r)
	wellbeing.New(svcs.Assessment).RegisterRoutes(r)
	chat.New(svcs.Chat, log).RegisterRoutes(r)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "page not found")
	})

	return r
}
