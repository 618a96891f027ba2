package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"cuenca_gateway/internal/domain"
)

// Cache keys of the read-mostly lookup lists.
const (
	keyHoteles                 = "lookup:hoteles"
	keyPoliticas               = "lookup:politicas"
	keyAmenidades              = "lookup:amenidades"
	keyTiposServicioPrefix     = "lookup:tipos-servicio"
	keyTiposAlimentacionPrefix = "lookup:tipos-alimentacion"
	keyIntegracionHoteles      = "lookup:integracion:hoteles"
	keyIntegracionUbicaciones  = "lookup:integracion:ubicaciones"

	maxCachedBytes = 1_000_000
)

// lookups is a read-through cache in front of list operations. Cache
// failures are logged and never fail the read.
type lookups struct {
	cache domain.Cache
	ttl   time.Duration
}

func cachedList[T any](ctx context.Context, l *lookups, key string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if l == nil || l.cache == nil {
		return fetch(ctx)
	}
	var out []T
	ok, err := l.cache.Get(ctx, key, &out)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if ok {
		return out, nil
	}
	out, err = fetch(ctx)
	if err != nil {
		return nil, err
	}
	if b, _ := json.Marshal(out); len(b) < maxCachedBytes {
		if err := l.cache.Set(ctx, key, out, int(l.ttl.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return out, nil
}

func (l *lookups) invalidate(ctx context.Context, keys ...string) {
	if l == nil || l.cache == nil {
		return
	}
	for _, k := range keys {
		if err := l.cache.Del(ctx, k); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("cache invalidation failed")
		}
	}
}
