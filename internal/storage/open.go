package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/valkey-io/valkey-go"
)

// Options selects and configures a storage driver.
type Options struct {
	Driver     string
	Path       string
	ValkeyAddr string
	Prefix     string
}

// Open builds the KV for the configured driver. The returned close func is never nil.
func Open(ctx context.Context, opts Options, log *logrus.Logger) (KV, func(), error) {
	noop := func() {}
	switch strings.ToLower(opts.Driver) {
	case "", "file":
		kv, err := NewFileKV(opts.Path, log)
		if err != nil {
			return nil, noop, err
		}
		return kv, noop, nil
	case "memory":
		return NewMemoryKV(), noop, nil
	case "valkey":
		client, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{opts.ValkeyAddr}})
		if err != nil {
			return nil, noop, fmt.Errorf("connect valkey: %w", err)
		}
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("ping valkey: %w", err)
		}
		return NewValkeyKV(client, opts.Prefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
