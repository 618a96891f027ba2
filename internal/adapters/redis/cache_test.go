package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "cuenca_gateway/internal/adapters/redis"
	"cuenca_gateway/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_MissSetHitDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	var got []domain.Hotel
	ok, err := c.Get(ctx, "lookup:hoteles:activos", &got)
	if err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	in := []domain.Hotel{{Id: 1, Nombre: "Cuenca", EsActivo: domain.Flag(true)}}
	if err := c.Set(ctx, "lookup:hoteles:activos", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("cuenca:lookup:hoteles:activos") {
		t.Fatalf("expected prefixed key in redis")
	}

	ok, err = c.Get(ctx, "lookup:hoteles:activos", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Nombre != "Cuenca" {
		t.Fatalf("unexpected cached value: %+v", got)
	}

	if err := c.Del(ctx, "lookup:hoteles:activos"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "lookup:hoteles:activos", &got); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCache_TTLExpires(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []int{1}, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	var out []int
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected expiry")
	}
}

func TestCache_CorruptValueIsError(t *testing.T) {
	c, mr := newCache(t)
	if err := mr.Set("cuenca:k", "{not json"); err != nil {
		t.Fatal(err)
	}
	var out []int
	if ok, err := c.Get(context.Background(), "k", &out); ok || err == nil {
		t.Fatalf("expected decode error, got ok=%v err=%v", ok, err)
	}
}
