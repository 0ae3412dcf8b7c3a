package storage

import (
	"context"
	"errors"
)

// Keys used by the client. They match the keys the web client kept in local storage.
const (
	KeyToken       = "token"
	KeyMoodHistory = "moodHistory"
	KeyAssessment  = "wellbeingAssessment"
)

// ErrUnknownDriver is returned by Open for unsupported storage drivers.
var ErrUnknownDriver = errors.New("unknown storage driver")

// KV 是同步的键值存储，语义对应浏览器 localStorage：单写者、后写覆盖、无跨键事务。
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
