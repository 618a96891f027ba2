package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"cuenca_gateway/internal/adapters/observability"
	"cuenca_gateway/internal/domain"
)

// Sweeper releases expired reservation-space holds and audits each attempt.
type Sweeper struct {
	src     domain.HoldSource
	audit   domain.SweepLog
	workers int
	now     func() time.Time
}

func NewSweeper(src domain.HoldSource, audit domain.SweepLog, workers int) *Sweeper {
	if workers <= 0 {
		workers = 1
	}
	return &Sweeper{src: src, audit: audit, workers: workers, now: time.Now}
}

// SweepResult counts the outcomes of one run.
type SweepResult struct {
	RunID    string `json:"runId"`
	Released int    `json:"released"`
	Rejected int    `json:"rejected"`
	Failed   int    `json:"failed"`
}

// Run releases every currently expired hold. Only failing to list the holds
// fails the run; per-hold errors are recorded and counted.
func (s *Sweeper) Run(ctx context.Context) (SweepResult, error) {
	res := SweepResult{RunID: uuid.NewString()}
	rels, err := s.src.RelacionesExpiradas(ctx)
	if err != nil {
		return res, err
	}
	log.Info().Str("run", res.RunID).Int("expired", len(rels)).Msg("sweep started")

	sem := semaphore.NewWeighted(int64(s.workers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, rel := range rels {
		// acquire before launching; a cancelled context stops new work
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			outcome, detail := s.release(ctx, rel.Id)
			observability.ObserveSweep(outcome)
			s.record(ctx, domain.SweepRecord{
				RunID:      res.RunID,
				RelacionID: rel.Id,
				ReservaID:  rel.ReservaId,
				EspacioID:  rel.EspacioId,
				Outcome:    outcome,
				Detail:     detail,
				CreatedAt:  s.now().UTC(),
			})

			mu.Lock()
			defer mu.Unlock()
			switch outcome {
			case domain.SweepReleased:
				res.Released++
			case domain.SweepRejected:
				res.Rejected++
			default:
				res.Failed++
			}
		}()
	}
	wg.Wait()

	log.Info().Str("run", res.RunID).
		Int("released", res.Released).
		Int("rejected", res.Rejected).
		Int("failed", res.Failed).
		Msg("sweep completed")
	return res, ctx.Err()
}

func (s *Sweeper) release(ctx context.Context, id int64) (string, string) {
	ok, err := s.src.DesbloquearRelacion(ctx, id)
	switch {
	case err != nil:
		log.Warn().Int64("relacion", id).Err(err).Msg("release failed")
		return domain.SweepFailed, err.Error()
	case !ok:
		return domain.SweepRejected, domain.ErrRejected.Error()
	}
	return domain.SweepReleased, ""
}

// record never fails the sweep; a lost audit row is logged.
func (s *Sweeper) record(ctx context.Context, r domain.SweepRecord) {
	if s.audit == nil {
		return
	}
	// rows of a cancelled run are still written
	if err := s.audit.Record(context.WithoutCancel(ctx), r); err != nil {
		log.Warn().Int64("relacion", r.RelacionID).Err(err).Msg("audit write failed")
	}
}

// Recent returns the latest audit rows, newest first.
func (s *Sweeper) Recent(ctx context.Context, limit int) ([]domain.SweepRecord, error) {
	if s.audit == nil {
		return []domain.SweepRecord{}, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.audit.ListRecent(ctx, limit)
}
