package health

import (
	"context"
	"errors"
	"testing"

	"github.com/rsbellis/kvfs/store"
	"github.com/rsbellis/kvfs/store/storetest"
)

func TestCheckStatusEmptyWhenNoChecksRegistered(t *testing.T) {
	r := NewRegistry()
	statuses := r.CheckStatus(context.Background())
	if len(statuses) != 0 {
		t.Fatalf("CheckStatus = %v, want empty", statuses)
	}
}

func TestCheckStatusReportsFailingCheck(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunc("always-fails", func(context.Context) error {
		return errors.New("boom")
	})

	statuses := r.CheckStatus(context.Background())
	if got, want := statuses["always-fails"], "boom"; got != want {
		t.Fatalf("statuses[always-fails] = %q, want %q", got, want)
	}
}

func TestRegisterPanicsOnDuplicateName(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunc("dup", func(context.Context) error { return nil })

	defer func() {
		if recover() == nil {
			t.Fatal("Register: want panic on duplicate name")
		}
	}()
	r.RegisterFunc("dup", func(context.Context) error { return nil })
}

func TestThresholdUpdaterRequiresConsecutiveFailures(t *testing.T) {
	u := NewThresholdStatusUpdater(3)

	u.Update(errors.New("fail 1"))
	if err := u.Check(context.Background()); err != nil {
		t.Fatalf("Check after 1 failure = %v, want nil (below threshold)", err)
	}

	u.Update(errors.New("fail 2"))
	u.Update(errors.New("fail 3"))
	if err := u.Check(context.Background()); err == nil {
		t.Fatal("Check after 3 consecutive failures = nil, want error")
	}

	u.Update(nil)
	if err := u.Check(context.Background()); err != nil {
		t.Fatalf("Check after recovery = %v, want nil", err)
	}
}

func TestStoreCheckerRoundTrips(t *testing.T) {
	s := store.New(storetest.NewMemoryDriver())
	check := NewStoreChecker(s, "test")

	if err := check.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
}
