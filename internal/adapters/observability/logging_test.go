package observability_test

import (
	"testing"

	"github.com/rs/zerolog"

	"cuenca_gateway/internal/adapters/observability"
)

func TestNewLogger_Level(t *testing.T) {
	if got := observability.NewLogger("prod", "debug", "api").GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("debug: got %s", got)
	}
	if got := observability.NewLogger("dev", "nonsense", "api").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("fallback: got %s", got)
	}
	if got := observability.NewLogger("prod", "", "sweeper").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("default: got %s", got)
	}
}
