package health

import (
	"context"
	"fmt"

	"github.com/rsbellis/kvfs/chunk"
	"github.com/rsbellis/kvfs/store"
)

// NewStoreChecker returns a Checker that performs a round-trip Put/Get of a
// small canary chunk against s on every Check call, grounded on
// health/checks.go's FileChecker (check by exercising the real backend,
// not by inspecting internal state). The check passes when Get returns the
// canary's bytes unchanged; it does not test whether the driver validates
// what it reads against the key.
func NewStoreChecker(s *store.Store, label string) Checker {
	canary := []byte("kvfs-health-check:" + label)

	return CheckFunc(func(ctx context.Context) error {
		c, err := chunk.New(canary, 0, nil)
		if err != nil {
			return fmt.Errorf("health: construct canary chunk: %w", err)
		}

		if err := s.Put(ctx, c); err != nil {
			return fmt.Errorf("health: put canary chunk: %w", err)
		}

		got, err := s.Get(ctx, c.Key())
		if err != nil {
			return fmt.Errorf("health: get canary chunk: %w", err)
		}

		if string(got.Data()) != string(canary) {
			return fmt.Errorf("health: canary chunk round-trip mismatch")
		}
		return nil
	})
}
