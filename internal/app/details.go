package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

const defaultDetailWorkers = 4

// DetailService assembles a reservation with its spaces and payments.
type DetailService struct {
	src     domain.DetailSource
	workers int
}

func NewDetailService(src domain.DetailSource, workers int) *DetailService {
	if workers <= 0 {
		workers = defaultDetailWorkers
	}
	return &DetailService{src: src, workers: workers}
}

// ReservationDetail runs the three lookups concurrently, then fetches each
// booked space's detail with at most s.workers calls in flight. A space
// without detail is returned with a nil Detail.
func (s *DetailService) ReservationDetail(ctx context.Context, reservaID int64) (domain.ReservaDetalle, error) {
	if err := domain.RequireID("id", reservaID); err != nil {
		return domain.ReservaDetalle{}, err
	}

	var (
		out  domain.ReservaDetalle
		rels []domain.Relacion
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rv, err := s.src.ReservaPorID(gctx, reservaID)
		out.Reserva = rv
		return err
	})
	g.Go(func() error {
		var err error
		rels, err = s.src.RelacionesPorReserva(gctx, reservaID)
		return err
	})
	g.Go(func() error {
		ps, err := s.src.PagosPorReserva(gctx, reservaID)
		if soap.IsNoResult(err) {
			ps, err = nil, nil
		}
		out.Pagos = ps
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ReservaDetalle{}, err
	}

	out.Espacios = make([]domain.EspacioReserva, len(rels))
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, rel := range rels {
		out.Espacios[i].Relacion = rel
		if rel.EspacioId <= 0 {
			continue
		}
		g.Go(func() error {
			d, err := s.src.EspacioDetalle(gctx, rel.EspacioId)
			if soap.IsNoResult(err) {
				return nil
			}
			if err != nil {
				return err
			}
			out.Espacios[i].Detalle = &d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ReservaDetalle{}, err
	}

	if out.Pagos == nil {
		out.Pagos = []domain.Pago{}
	}
	for _, p := range out.Pagos {
		if domain.Active(p.EsActivo) {
			out.Pagado += p.Monto
		}
	}
	return out, nil
}
