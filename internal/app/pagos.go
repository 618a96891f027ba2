package app

import (
	"context"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

type PagoService struct{ r remote }

func (s *PagoService) List(ctx context.Context) ([]domain.Pago, error) {
	return list[domain.Pago](ctx, s.r, "seleccionarPagos", nil)
}

func (s *PagoService) ByReserva(ctx context.Context, reservaID int64) ([]domain.Pago, error) {
	if err := domain.RequireID("reservaId", reservaID); err != nil {
		return nil, err
	}
	return list[domain.Pago](ctx, s.r, "seleccionarPagosPorReserva", soap.Params{soap.P("reservaId", reservaID)})
}

func (s *PagoService) ByEstado(ctx context.Context, estado string) ([]domain.Pago, error) {
	if err := domain.RequireText("estado", estado); err != nil {
		return nil, err
	}
	return list[domain.Pago](ctx, s.r, "obtenerPagosPorEstado", soap.Params{soap.P("estado", estado)})
}

func (s *PagoService) ByID(ctx context.Context, id int64) (domain.Pago, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Pago{}, err
	}
	return one[domain.Pago](ctx, s.r, "seleccionarPagoPorId", byID(id))
}

func (s *PagoService) ByReferencia(ctx context.Context, ref string) (domain.Pago, error) {
	if err := domain.RequireText("referencia", ref); err != nil {
		return domain.Pago{}, err
	}
	return one[domain.Pago](ctx, s.r, "buscarPorReferencia", soap.Params{soap.P("referencia", ref)})
}

// ByUsuario lists payment details of a local or external user. The id that
// is not given travels as 0.
func (s *PagoService) ByUsuario(ctx context.Context, usuarioID, externoID int64) ([]domain.PagoDetalle, error) {
	if usuarioID <= 0 && externoID <= 0 {
		return nil, domain.Invalid("usuarioId", "a user or external user is required")
	}
	return list[domain.PagoDetalle](ctx, s.r, "obtenerPagosPorUsuario",
		soap.Params{soap.P("usuarioId", max(usuarioID, 0)), soap.P("usuarioExternoId", max(externoID, 0))})
}

func (s *PagoService) TotalPaid(ctx context.Context, reservaID int64) (float64, error) {
	if err := domain.RequireID("reservaId", reservaID); err != nil {
		return 0, err
	}
	return one[float64](ctx, s.r, "calcularTotalPagado", soap.Params{soap.P("reservaId", reservaID)})
}

func validatePago(p domain.Pago) error {
	if err := domain.RequireID("ReservaId", p.ReservaId); err != nil {
		return err
	}
	if p.Monto <= 0 {
		return domain.Invalid("Monto", "must be positive")
	}
	return nil
}

func (s *PagoService) Create(ctx context.Context, p domain.Pago) (int64, error) {
	if err := validatePago(p); err != nil {
		return 0, err
	}
	p.Id, p.EsActivo, p.Reservas = 0, domain.Flag(true), nil
	return insert(ctx, s.r, "insertarPago", soap.Params{soap.P("nuevoPago", p)})
}

func (s *PagoService) Update(ctx context.Context, p domain.Pago) error {
	if err := domain.RequireID("Id", p.Id); err != nil {
		return err
	}
	if err := validatePago(p); err != nil {
		return err
	}
	p.UltimaFechaCambio, p.Reservas = "", nil
	return mutate(ctx, s.r, "actualizarPago", soap.Params{soap.P("pagoEditado", p)})
}

func (s *PagoService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	return mutate(ctx, s.r, "eliminarPago", byID(id))
}
