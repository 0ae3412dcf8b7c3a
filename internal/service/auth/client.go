package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/zhouzirui/mindful/client/pkg/errors"
)

const (
	// DefaultBaseURL is the production authentication backend.
	DefaultBaseURL = "https://api.malaysiabdmartshop.com"

	MsgUnavailable = "An error occurred. Please try again later."
	MsgRetry       = "Please try again."
	MsgSignupOK    = "Signup successful! Please check your email/phone for the OTP."
	MsgVerifyOK    = "OTP verified successfully! Please log in now"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Client talks to the authentication backend. Every call is a single attempt:
// no timeout, no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a backend client.
func NewClient(baseURL string) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(url, "/"),
		httpClient: &http.Client{},
	}
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var out loginResponse
	if err := c.post(ctx, "/api/auth/login", "Login", creds, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", apperrors.Wrap(apperrors.CodeAuthFailed, "Login failed: "+MsgRetry, nil)
	}
	return out.Token, nil
}

// Signup registers an account; on success the backend issues an OTP.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.post(ctx, "/api/auth/signup", "Signup", req, nil)
}

// VerifyOTP confirms the OTP sent after signup.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.post(ctx, "/api/auth/verify-otp", "Verification", otpRequest{Email: email, OTP: otp}, nil)
}

func (c *Client) post(ctx context.Context, path, action string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "invalid request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetwork, MsgUnavailable, fmt.Errorf("build %s request: %w", path, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetwork, MsgUnavailable, fmt.Errorf("%s request failed: %w", path, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeNetwork, MsgUnavailable, fmt.Errorf("read %s response: %w", path, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var failure errorResponse
		if err := json.Unmarshal(data, &failure); err != nil {
			// 后端没有返回 JSON，按网络异常处理
			return apperrors.Wrap(apperrors.CodeNetwork, MsgUnavailable,
				fmt.Errorf("%s status=%d body=%s", path, resp.StatusCode, truncate(data)))
		}
		msg := strings.TrimSpace(failure.Message)
		if msg == "" {
			msg = MsgRetry
		}
		return apperrors.Wrap(apperrors.CodeAuthFailed, fmt.Sprintf("%s failed: %s", action, msg),
			fmt.Errorf("%s status=%d", path, resp.StatusCode))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.CodeNetwork, MsgUnavailable, fmt.Errorf("decode %s response: %w", path, err))
	}
	return nil
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit])
	}
	return string(b)
}
