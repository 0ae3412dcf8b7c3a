package storage

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"
)

// ValkeyKV stores keys in a Valkey-compatible server under a shared prefix,
// letting several client processes of the same user share one history.
type ValkeyKV struct {
	client valkey.Client
	prefix string
}

// NewValkeyKV wraps an existing client.
func NewValkeyKV(client valkey.Client, prefix string) *ValkeyKV {
	if prefix == "" {
		prefix = "mindful"
	}
	return &ValkeyKV{client: client, prefix: prefix}
}

func (v *ValkeyKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := v.client.Do(ctx, v.client.B().Get().Key(v.key(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (v *ValkeyKV) Set(ctx context.Context, key, value string) error {
	return v.client.Do(ctx, v.client.B().Set().Key(v.key(key)).Value(value).Build()).Error()
}

func (v *ValkeyKV) Delete(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Del().Key(v.key(key)).Build()).Error()
}

func (v *ValkeyKV) key(name string) string {
	return fmt.Sprintf("%s:%s", v.prefix, name)
}

var _ KV = (*ValkeyKV)(nil)
