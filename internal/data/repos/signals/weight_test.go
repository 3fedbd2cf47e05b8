package signals

import (
	"context"
	"math"
	"testing"

	"github.com/radarloop/radarloop-backend/internal/data/repos/testutil"
	types "github.com/radarloop/radarloop-backend/internal/domain"
	"github.com/radarloop/radarloop-backend/internal/pkg/dbctx"
	sig "github.com/radarloop/radarloop-backend/internal/signals"
)

func TestWeightRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewWeightRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "weights@example.com")
	key := sig.Normalize(sig.TypeEntity, "grok")

	// Lazy creation on first increment.
	if err := repo.UpsertAdd(dbc, u.ID, key, -0.10); err != nil {
		t.Fatalf("UpsertAdd(create): %v", err)
	}
	rows, err := repo.GetByUserID(dbc, u.ID)
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByUserID: err=%v len=%d", err, len(rows))
	}
	if rows[0].SignalKey != "entity:grok" || rows[0].State != types.WeightStateActive {
		t.Fatalf("unexpected row %+v", rows[0])
	}
	if math.Abs(rows[0].Weight-(-0.10)) > 1e-9 {
		t.Fatalf("weight = %v, want -0.10", rows[0].Weight)
	}

	// Increment accumulates, never overwrites.
	if err := repo.UpsertAdd(dbc, u.ID, key, 0.25); err != nil {
		t.Fatalf("UpsertAdd(increment): %v", err)
	}
	rows, _ = repo.GetByUserID(dbc, u.ID)
	if len(rows) != 1 || math.Abs(rows[0].Weight-0.15) > 1e-9 {
		t.Fatalf("accumulated weight = %+v, want 0.15", rows)
	}

	// Mute flips state only.
	if err := repo.SetMuted(dbc, u.ID, key, true); err != nil {
		t.Fatalf("SetMuted: %v", err)
	}
	rows, _ = repo.GetByUserID(dbc, u.ID)
	if rows[0].State != types.WeightStateMuted {
		t.Fatalf("state = %q, want muted", rows[0].State)
	}
	if math.Abs(rows[0].Weight-0.15) > 1e-9 {
		t.Fatalf("mute changed weight: %v", rows[0].Weight)
	}

	// Mute on a key never seen before creates the row lazily.
	fresh := sig.Normalize(sig.TypeConcept, "deepfake")
	if err := repo.SetMuted(dbc, u.ID, fresh, true); err != nil {
		t.Fatalf("SetMuted(fresh): %v", err)
	}
	rows, _ = repo.GetByUserID(dbc, u.ID)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	// Reset zeroes the weight and reactivates.
	if err := repo.ResetWeight(dbc, u.ID, key); err != nil {
		t.Fatalf("ResetWeight: %v", err)
	}
	rows, _ = repo.GetByUserID(dbc, u.ID)
	for _, row := range rows {
		if row.SignalKey != key.String() {
			continue
		}
		if row.Weight != 0 || row.State != types.WeightStateActive {
			t.Fatalf("reset row = %+v", row)
		}
	}
}
