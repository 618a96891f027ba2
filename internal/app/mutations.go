package app

import (
	"context"
	"fmt"

	"cuenca_gateway/internal/domain"
)

// mutate runs an operation answering a boolean. false means the service
// refused the change and surfaces as domain.ErrRejected.
func mutate(ctx context.Context, r remote, name string, req any) error {
	ok, err := one[bool](ctx, r, name, req)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", name, domain.ErrRejected)
	}
	return nil
}

// insert runs an operation answering the new record's id.
func insert(ctx context.Context, r remote, name string, req any) (int64, error) {
	id, err := one[int64](ctx, r, name, req)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s: %w", name, domain.ErrRejected)
	}
	return id, nil
}
