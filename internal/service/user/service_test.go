package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tinoosan/ncnews/internal/errs"
	"github.com/tinoosan/ncnews/internal/seed"
	"github.com/tinoosan/ncnews/internal/service/user"
	"github.com/tinoosan/ncnews/internal/storage/memory"
)

func TestByUsername(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	if _, err := seed.Load(ctx, store, seed.Default()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := user.New(store)

	u, err := svc.ByUsername(ctx, "butter_bridge")
	if err != nil || u.Name != "jonny" {
		t.Fatalf("lookup: %+v %v", u, err)
	}
	if _, err := svc.ByUsername(ctx, "ferferggvegrge"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("unknown username: %v", err)
	}
	for _, bad := range []string{"", "Butter Bridge", "x"} {
		if _, err := svc.ByUsername(ctx, bad); !errors.Is(err, errs.ErrInvalid) {
			t.Fatalf("%q: expected invalid, got %v", bad, err)
		}
	}
	all, err := svc.List(ctx)
	if err != nil || len(all) != 3 || all[0].Username != "butter_bridge" {
		t.Fatalf("list: %+v %v", all, err)
	}
}
