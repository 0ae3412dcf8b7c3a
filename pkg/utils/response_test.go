package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/zhouzirui/mindful/client/pkg/errors"
)

func TestRespondAppErrorMapsCodes(t *testing.T) {
	cases := map[string]int{
		apperrors.CodeInvalidInput: http.StatusBadRequest,
		apperrors.CodeAuthFailed:   http.StatusUnauthorized,
		apperrors.CodeIncomplete:   http.StatusConflict,
		apperrors.CodeNetwork:      http.StatusBadGateway,
		apperrors.CodeStorage:      http.StatusInternalServerError,
	}
	for code, status := range cases {
		resp := httptest.NewRecorder()
		RespondAppError(resp, apperrors.Wrap(code, "boom", nil))
		require.Equal(t, status, resp.Code, code)
		require.JSONEq(t, `{"error":"boom"}`, resp.Body.String())
	}

	require.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("x")))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Text string `json:"text"`
	}
	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"hi"}`)), &v))
	require.Equal(t, "hi", v.Text)

	require.NoError(t, DecodeJSON(httptest.NewRequest(http.MethodPost, "/", nil), &v))

	err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":`)), &v)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestSendSSEEvent(t *testing.T) {
	resp := httptest.NewRecorder()
	SetupSSEHeaders(resp)
	require.NoError(t, SendSSEEvent(resp, resp, "snapshot", map[string]int{"n": 1}))
	require.NoError(t, SendSSEComment(resp, resp, "heartbeat"))

	require.Equal(t, "text/event-stream", resp.Header().Get("Content-Type"))
	require.Equal(t, "event: snapshot\ndata: {\"n\":1}\n\n: heartbeat\n\n", resp.Body.String())
}
