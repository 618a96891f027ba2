package app

import (
	"context"

	"github.com/google/uuid"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

type ReservaService struct{ r remote }

func (s *ReservaService) List(ctx context.Context) ([]domain.Reserva, error) {
	return list[domain.Reserva](ctx, s.r, "seleccionarReservas", nil)
}

func (s *ReservaService) ByUsuario(ctx context.Context, usuarioID int64) ([]domain.Reserva, error) {
	if err := domain.RequireID("usuarioId", usuarioID); err != nil {
		return nil, err
	}
	return list[domain.Reserva](ctx, s.r, "seleccionarReservasPorUsuario", soap.Params{soap.P("usuarioId", usuarioID)})
}

func (s *ReservaService) ByID(ctx context.Context, id int64) (domain.Reserva, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Reserva{}, err
	}
	return one[domain.Reserva](ctx, s.r, "seleccionarReservaPorId", byID(id))
}

func (s *ReservaService) Expired(ctx context.Context) ([]domain.Reserva, error) {
	return list[domain.Reserva](ctx, s.r, "obtenerReservasExpiradas", nil)
}

func (s *ReservaService) Locked(ctx context.Context) ([]domain.Reserva, error) {
	return list[domain.Reserva](ctx, s.r, "obtenerReservasBloqueadas", nil)
}

func validateReserva(rv domain.Reserva) error {
	if rv.UsuarioId <= 0 && rv.UsuarioExternoId <= 0 {
		return domain.Invalid("UsuarioId", "a user or external user is required")
	}
	if rv.CostoSubtotal < 0 || rv.CostoIVA < 0 || rv.CostoFinal < 0 {
		return domain.Invalid("CostoFinal", "costs must not be negative")
	}
	return nil
}

// Create opens a pending reservation. A session token is minted when missing.
func (s *ReservaService) Create(ctx context.Context, rv domain.Reserva) (int64, error) {
	if err := validateReserva(rv); err != nil {
		return 0, err
	}
	rv.Id, rv.EsActivo = 0, domain.Flag(true)
	if rv.Estado == "" {
		rv.Estado = domain.EstadoPendiente
	}
	if rv.TokenSesion == "" {
		rv.TokenSesion = uuid.NewString()
	}
	return insert(ctx, s.r, "insertarReserva", soap.Params{soap.P("nuevaReserva", rv)})
}

func (s *ReservaService) Update(ctx context.Context, rv domain.Reserva) error {
	if err := domain.RequireID("Id", rv.Id); err != nil {
		return err
	}
	if err := validateReserva(rv); err != nil {
		return err
	}
	rv.UltimaFechaCambio = ""
	return mutate(ctx, s.r, "actualizarReserva", soap.Params{soap.P("reservaEditada", rv)})
}

func (s *ReservaService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	return mutate(ctx, s.r, "eliminarReserva", byID(id))
}

func (s *ReservaService) ChangeState(ctx context.Context, id int64, estado string) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	if err := domain.RequireText("nuevoEstado", estado); err != nil {
		return err
	}
	return mutate(ctx, s.r, "cambiarEstadoReserva", soap.Params{soap.P("id", id), soap.P("nuevoEstado", estado)})
}

// ComputeTotals asks the service to recompute subtotal, VAT and total.
// The operation returns nothing; an answered envelope is success.
func (s *ReservaService) ComputeTotals(ctx context.Context, rv domain.Reserva, porcentajeIVA float64) error {
	if err := domain.RequireID("Id", rv.Id); err != nil {
		return err
	}
	if porcentajeIVA < 0 || porcentajeIVA > 100 {
		return domain.Invalid("porcentajeIVA", "must be between 0 and 100")
	}
	return exec(ctx, s.r, "calcularTotales", soap.Params{soap.P("reserva", rv), soap.P("porcentajeIVA", porcentajeIVA)})
}

func (s *ReservaService) Lock(ctx context.Context, id int64, minutos int) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	if minutos <= 0 {
		return domain.Invalid("minutosRetencion", "must be positive")
	}
	return mutate(ctx, s.r, "bloquearReserva", soap.Params{soap.P("id", id), soap.P("minutosRetencion", minutos)})
}
