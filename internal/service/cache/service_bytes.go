package cache

import (
	"context"
	"errors"
	"time"

	pkgcache "streampulse/pkg/cache"
)

// ServiceBytes adapts a pkg/cache Service (memory, redis, or layered) to the
// BytesCache API used at the handler edge.
type ServiceBytes struct {
	svc pkgcache.Service
}

func NewServiceBytes(svc pkgcache.Service) *ServiceBytes {
	return &ServiceBytes{svc: svc}
}

func (s *ServiceBytes) GetBytes(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	var b []byte
	err := s.svc.Get(ctx, key, &b)
	if err != nil {
		if errors.Is(err, pkgcache.ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (s *ServiceBytes) SetBytes(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.svc.Set(ctx, key, value, ttl)
}

var _ BytesCache = (*ServiceBytes)(nil)
