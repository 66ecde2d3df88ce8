package port

import "context"

// KeyValueStorePort is the persistence contract of the service: a small
// store of JSON payloads under fixed logical keys ("recent searches",
// "saved listings"). Get returns (nil, nil) for an absent key.
type KeyValueStorePort interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
