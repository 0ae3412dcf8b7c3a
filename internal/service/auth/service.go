package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	apperrors "github.com/zhouzirui/mindful/client/pkg/errors"
	"github.com/zhouzirui/mindful/client/pkg/logger"
)

// TokenStore holds the credential token.
type TokenStore interface {
	Token(ctx context.Context) string
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Backend is the remote authentication API.
type Backend interface {
	Login(ctx context.Context, creds Credentials) (string, error)
	Signup(ctx context.Context, req SignupRequest) error
	VerifyOTP(ctx context.Context, email, otp string) error
}

// Service is the authentication context shared by every page: it answers
// "is authenticated" and owns login, signup and logout.
type Service struct {
	store   TokenStore
	backend Backend
	log     *logrus.Entry

	mu           sync.Mutex
	pendingEmail string
}

// NewService creates the authentication context.
func NewService(store TokenStore, backend Backend, log *logrus.Logger) *Service {
	return &Service{store: store, backend: backend, log: logger.Component(log, "auth.service")}
}

// IsAuthenticated reports whether a credential token is stored.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	return s.store.Token(ctx) != ""
}

// Token returns the stored credential token, or "".
func (s *Service) Token(ctx context.Context) string {
	return s.store.Token(ctx)
}

// Login authenticates and stores the returned token.
func (s *Service) Login(ctx context.Context, creds Credentials) error {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "email and password are required", nil)
	}
	token, err := s.backend.Login(ctx, creds)
	if err != nil {
		s.log.WithError(err).WithField("email", creds.Email).Warn("login failed")
		return err
	}
	if err := s.store.SetToken(ctx, token); err != nil {
		return err
	}
	s.log.WithField("email", creds.Email).Info("logged in")
	return nil
}

// Signup registers the account and remembers the email for OTP verification.
func (s *Service) Signup(ctx context.Context, req SignupRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "email and password are required", nil)
	}
	if err := s.backend.Signup(ctx, req); err != nil {
		s.log.WithError(err).WithField("email", req.Email).Warn("signup failed")
		return err
	}
	s.mu.Lock()
	s.pendingEmail = req.Email
	s.mu.Unlock()
	s.log.WithField("email", req.Email).Info("signup accepted, awaiting otp")
	return nil
}

// PendingEmail is the address of the last accepted signup.
func (s *Service) PendingEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingEmail
}

// VerifyOTP confirms the pending signup. The user still logs in afterwards.
func (s *Service) VerifyOTP(ctx context.Context, otp string) error {
	email := s.PendingEmail()
	if email == "" {
		return apperrors.Wrap(apperrors.CodeInvalidState, "no signup is awaiting verification", nil)
	}
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "otp is required", nil)
	}
	if err := s.backend.VerifyOTP(ctx, email, otp); err != nil {
		s.log.WithError(err).WithField("email", email).Warn("otp verification failed")
		return err
	}
	s.mu.Lock()
	s.pendingEmail = ""
	s.mu.Unlock()
	return nil
}

// Logout forgets the credential token.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.ClearToken(ctx); err != nil {
		return err
	}
	s.log.Info("logged out")
	return nil
}
