package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/mindful/client/internal/handler/page"
	"github.com/zhouzirui/mindful/client/internal/model/resource"
	assessmentService "github.com/zhouzirui/mindful/client/internal/service/assessment"
	authService "github.com/zhouzirui/mindful/client/internal/service/auth"
	chatService "github.com/zhouzirui/mindful/client/internal/service/chat"
	moodService "github.com/zhouzirui/mindful/client/internal/service/mood"
	"github.com/zhouzirui/mindful/client/internal/storage"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := storage.NewAdapter(storage.NewMemoryKV(), log)
	authSvc := authService.NewService(store, authService.NewClient("http://127.0.0.1:1"), log)

	return NewRouter(Services{
		Auth:       authSvc,
		Mood:       moodService.NewService(store, log),
		Assessment: assessmentService.NewService(store, assessmentService.DefaultThresholds(), log),
		Chat:       chatService.NewChannel("ws://127.0.0.1:1/ws", authSvc, log),
		Resources:  resource.NewMemoryStore(resource.Seed()),
	}, log)
}

func TestRoutesAreReachable(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/", "/nav", "/resources", "/chat", "/mood-tracker", "/wellbeing-plan", "/auth/login", "/auth/signup",
	} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, resp.Code, path)
		require.Equal(t, "application/json", resp.Header().Get("Content-Type"), path)
		require.NotEmpty(t, resp.Header().Get("Access-Control-Allow-Origin"), path)
	}
}

func TestNavLinksAreFollowable(t *testing.T) {
	r := newTestRouter(t)

	for _, authed := range []bool{false, true} {
		for _, link := range page.Nav(authed) {
			method := link.Method
			if method == "" {
				method = http.MethodGet
			}
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(method, link.To, nil))
			require.Equal(t, http.StatusOK, resp.Code, "%s %s", method, link.To)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.JSONEq(t, `{"error":"page not found"}`, resp.Body.String())
}

func TestChatStreamFailsWhenBackendIsDown(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/chat/stream", nil))
	require.Equal(t, http.StatusBadGateway, resp.Code)
}
