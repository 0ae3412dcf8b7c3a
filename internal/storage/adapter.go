package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/internal/model/assessment"
	"github.com/zhouzirui/mindful/client/internal/model/mood"
	apperrors "github.com/zhouzirui/mindful/client/pkg/errors"
	"github.com/zhouzirui/mindful/client/pkg/logger"
)

// Adapter persists client records as JSON values in a KV.
// Unreadable or malformed values are treated as absent.
type Adapter struct {
	kv  KV
	log *logrus.Entry
}

// NewAdapter wraps kv.
func NewAdapter(kv KV, log *logrus.Logger) *Adapter {
	return &Adapter{kv: kv, log: logger.Component(log, "storage")}
}

// LoadMoodHistory returns the saved entries, or an empty slice.
func (a *Adapter) LoadMoodHistory(ctx context.Context) []mood.Entry {
	entries := []mood.Entry{}
	if !a.loadJSON(ctx, KeyMoodHistory, &entries) || entries == nil {
		return []mood.Entry{}
	}
	return entries
}

// SaveMoodHistory overwrites the whole history record.
func (a *Adapter) SaveMoodHistory(ctx context.Context, entries []mood.Entry) error {
	if entries == nil {
		entries = []mood.Entry{}
	}
	return a.saveJSON(ctx, KeyMoodHistory, entries)
}

// ClearMoodHistory removes the history record.
func (a *Adapter) ClearMoodHistory(ctx context.Context) error {
	if err := a.kv.Delete(ctx, KeyMoodHistory); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to clear mood history", err)
	}
	return nil
}

// LoadAssessment returns the saved assessment record, if any.
func (a *Adapter) LoadAssessment(ctx context.Context) (assessment.Record, bool) {
	var record assessment.Record
	if !a.loadJSON(ctx, KeyAssessment, &record) {
		return assessment.Record{}, false
	}
	return record, true
}

// SaveAssessment overwrites the assessment record.
func (a *Adapter) SaveAssessment(ctx context.Context, record assessment.Record) error {
	return a.saveJSON(ctx, KeyAssessment, record)
}

// Token returns the stored credential token; "" when absent.
// The literal "null" is what the web client stored after a failed login and counts as absent.
func (a *Adapter) Token(ctx context.Context) string {
	value, ok, err := a.kv.Get(ctx, KeyToken)
	if err != nil {
		a.log.WithError(err).Warn("read token failed")
		return ""
	}
	value = strings.TrimSpace(value)
	if !ok || value == "null" {
		return ""
	}
	return value
}

// SetToken stores the credential token.
func (a *Adapter) SetToken(ctx context.Context, token string) error {
	if err := a.kv.Set(ctx, KeyToken, token); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to store token", err)
	}
	return nil
}

// ClearToken removes the credential token.
func (a *Adapter) ClearToken(ctx context.Context) error {
	if err := a.kv.Delete(ctx, KeyToken); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to clear token", err)
	}
	return nil
}

func (a *Adapter) loadJSON(ctx context.Context, key string, out any) bool {
	raw, ok, err := a.kv.Get(ctx, key)
	if err != nil {
		a.log.WithError(err).WithField("key", key).Warn("read failed, treating as empty")
		return false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		a.log.WithError(err).WithField("key", key).Warn("malformed record, treating as empty")
		return false
	}
	return true
}

func (a *Adapter) saveJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to encode "+key, err)
	}
	if err := a.kv.Set(ctx, key, string(data)); err != nil {
		return apperrors.Wrap(apperrors.CodeStorage, "failed to save "+key, err)
	}
	return nil
}
