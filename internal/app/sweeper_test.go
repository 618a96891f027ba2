package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"cuenca_gateway/internal/app"
	"cuenca_gateway/internal/domain"
)

type fakeHolds struct {
	rels    []domain.Relacion
	listErr error
	answers map[int64]bool
	errs    map[int64]error
}

func (f *fakeHolds) RelacionesExpiradas(ctx context.Context) ([]domain.Relacion, error) {
	return f.rels, f.listErr
}

func (f *fakeHolds) DesbloquearRelacion(ctx context.Context, id int64) (bool, error) {
	if err := f.errs[id]; err != nil {
		return false, err
	}
	return f.answers[id], nil
}

type memLog struct {
	mu   sync.Mutex
	rows []domain.SweepRecord
}

func (m *memLog) Record(ctx context.Context, r domain.SweepRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, r)
	return nil
}

func (m *memLog) ListRecent(ctx context.Context, limit int) ([]domain.SweepRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.rows) {
		limit = len(m.rows)
	}
	return append([]domain.SweepRecord(nil), m.rows[:limit]...), nil
}

func TestSweeper_RecordsEveryOutcome(t *testing.T) {
	src := &fakeHolds{
		rels: []domain.Relacion{
			{Id: 1, ReservaId: 10, EspacioId: 100},
			{Id: 2, ReservaId: 10, EspacioId: 101},
			{Id: 3, ReservaId: 11, EspacioId: 102},
		},
		answers: map[int64]bool{1: true, 2: false},
		errs:    map[int64]error{3: errors.New("connection reset")},
	}
	audit := &memLog{}

	res, err := app.NewSweeper(src, audit, 2).Run(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Released != 1 || res.Rejected != 1 || res.Failed != 1 || res.RunID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	rows := audit.rows
	sort.Slice(rows, func(i, j int) bool { return rows[i].RelacionID < rows[j].RelacionID })
	want := []string{domain.SweepReleased, domain.SweepRejected, domain.SweepFailed}
	for i, r := range rows {
		if r.Outcome != want[i] || r.RunID != res.RunID || r.CreatedAt.IsZero() {
			t.Fatalf("row %d: %+v", i, r)
		}
	}
	if rows[2].Detail != "connection reset" || rows[1].EspacioID != 101 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestSweeper_ListFailureFailsRun(t *testing.T) {
	boom := errors.New("boom")
	_, err := app.NewSweeper(&fakeHolds{listErr: boom}, &memLog{}, 1).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestSweeper_NothingExpired(t *testing.T) {
	audit := &memLog{}
	res, err := app.NewSweeper(&fakeHolds{}, audit, 3).Run(context.Background())
	if err != nil || res.Released+res.Rejected+res.Failed != 0 || len(audit.rows) != 0 {
		t.Fatalf("got %+v %v rows=%d", res, err, len(audit.rows))
	}
}

func TestSweeper_RecentWithoutLog(t *testing.T) {
	rows, err := app.NewSweeper(&fakeHolds{}, nil, 1).Recent(context.Background(), 10)
	if err != nil || rows == nil || len(rows) != 0 {
		t.Fatalf("got %v %v", rows, err)
	}
}
