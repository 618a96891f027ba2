package app

import (
	"context"

	"github.com/google/uuid"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

// RelacionService covers the RESXESP join between reservations and spaces.
type RelacionService struct{ r remote }

func (s *RelacionService) List(ctx context.Context) ([]domain.Relacion, error) {
	return list[domain.Relacion](ctx, s.r, "seleccionarRelaciones", nil)
}

func (s *RelacionService) ByReserva(ctx context.Context, reservaID int64) ([]domain.Relacion, error) {
	if err := domain.RequireID("reservaId", reservaID); err != nil {
		return nil, err
	}
	return list[domain.Relacion](ctx, s.r, "seleccionarPorReserva", soap.Params{soap.P("reservaId", reservaID)})
}

func (s *RelacionService) ByEspacio(ctx context.Context, espacioID int64) ([]domain.Relacion, error) {
	if err := domain.RequireID("espacioId", espacioID); err != nil {
		return nil, err
	}
	return list[domain.Relacion](ctx, s.r, "seleccionarPorEspacio", soap.Params{soap.P("espacioId", espacioID)})
}

func (s *RelacionService) ByID(ctx context.Context, id int64) (domain.Relacion, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Relacion{}, err
	}
	return one[domain.Relacion](ctx, s.r, "seleccionarPorId", byID(id))
}

func (s *RelacionService) Expired(ctx context.Context) ([]domain.Relacion, error) {
	return list[domain.Relacion](ctx, s.r, "obtenerRelacionesExpiradas", nil)
}

func validateRelacion(rel domain.Relacion) error {
	if err := domain.RequireID("ReservaId", rel.ReservaId); err != nil {
		return err
	}
	if err := domain.RequireID("EspacioId", rel.EspacioId); err != nil {
		return err
	}
	return domain.RequireRange(rel.FechaInicio, rel.FechaFin)
}

// Create opens a held relation. A session token is minted when missing.
func (s *RelacionService) Create(ctx context.Context, rel domain.Relacion) (int64, error) {
	if err := validateRelacion(rel); err != nil {
		return 0, err
	}
	rel.Id, rel.EsActivo = 0, domain.Flag(true)
	if rel.TokenSesion == "" {
		rel.TokenSesion = uuid.NewString()
	}
	rel.Espacios, rel.Reservas = nil, nil
	return insert(ctx, s.r, "insertarRelacion", soap.Params{soap.P("nuevaRelacion", rel)})
}

func (s *RelacionService) Update(ctx context.Context, rel domain.Relacion) error {
	if err := domain.RequireID("Id", rel.Id); err != nil {
		return err
	}
	if err := validateRelacion(rel); err != nil {
		return err
	}
	rel.UltimaFechaCambio = ""
	rel.Espacios, rel.Reservas = nil, nil
	return mutate(ctx, s.r, "actualizarRelacion", soap.Params{soap.P("relacionEditada", rel)})
}

func (s *RelacionService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	return mutate(ctx, s.r, "eliminarRelacion", byID(id))
}

// Release drops the temporary lock of a relation and reports whether the
// service agreed. The sweeper records a refusal instead of failing.
func (s *RelacionService) Release(ctx context.Context, id int64) (bool, error) {
	if err := domain.RequireID("id", id); err != nil {
		return false, err
	}
	return one[bool](ctx, s.r, "desbloquearRelacion", byID(id))
}

// Unlock is Release with a refusal surfaced as domain.ErrRejected.
func (s *RelacionService) Unlock(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	return mutate(ctx, s.r, "desbloquearRelacion", byID(id))
}

type rangoEspacio struct {
	EspacioId   int64  `soap:"espacioId"`
	FechaInicio string `soap:"fechaInicio"`
	FechaFin    string `soap:"fechaFin"`
}

func (s *RelacionService) Available(ctx context.Context, espacioID int64, from, to string) (bool, error) {
	if err := domain.RequireID("espacioId", espacioID); err != nil {
		return false, err
	}
	if err := domain.RequireRange(from, to); err != nil {
		return false, err
	}
	return one[bool](ctx, s.r, "espacioDisponible", rangoEspacio{espacioID, from, to})
}

func (s *RelacionService) Cost(ctx context.Context, espacioID int64, from, to string) (float64, error) {
	if err := domain.RequireID("espacioId", espacioID); err != nil {
		return 0, err
	}
	if err := domain.RequireRange(from, to); err != nil {
		return 0, err
	}
	return one[float64](ctx, s.r, "calcularCosto", rangoEspacio{espacioID, from, to})
}

func (s *RelacionService) Rate(ctx context.Context, id int64, puntuacion int) error {
	if err := domain.RequireID("idRelacion", id); err != nil {
		return err
	}
	if puntuacion < 0 || puntuacion > 5 {
		return domain.Invalid("puntuacion", "must be between 0 and 5")
	}
	return mutate(ctx, s.r, "actualizarPuntuacion",
		soap.Params{soap.P("idRelacion", id), soap.P("puntuacion", puntuacion)})
}
