package app

import (
	"context"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

type EspacioService struct{ r remote }

func (s *EspacioService) List(ctx context.Context) ([]domain.Espacio, error) {
	return list[domain.Espacio](ctx, s.r, "seleccionarEspacios", nil)
}

func validateEspacio(e domain.Espacio) error {
	if err := domain.RequireID("HotelId", e.HotelId); err != nil {
		return err
	}
	if err := domain.RequireText("Nombre", e.Nombre); err != nil {
		return err
	}
	if e.CostoDiario < 0 {
		return domain.Invalid("CostoDiario", "must not be negative")
	}
	if e.Puntuacion < 0 || e.Puntuacion > 5 {
		return domain.Invalid("Puntuacion", "must be between 0 and 5")
	}
	return nil
}

func (s *EspacioService) Create(ctx context.Context, e domain.Espacio) (int64, error) {
	if err := validateEspacio(e); err != nil {
		return 0, err
	}
	e.Id, e.EsActivo = 0, domain.Flag(true)
	e.Hotel, e.TipoServicio, e.TipoAlimentacion = nil, nil, nil
	return insert(ctx, s.r, "insertarEspacio", soap.Params{soap.P("nuevoEspacio", e)})
}

func (s *EspacioService) Update(ctx context.Context, e domain.Espacio) error {
	if err := domain.RequireID("Id", e.Id); err != nil {
		return err
	}
	if err := validateEspacio(e); err != nil {
		return err
	}
	e.UltimaFechaCambio = ""
	e.Hotel, e.TipoServicio, e.TipoAlimentacion = nil, nil, nil
	return mutate(ctx, s.r, "actualizarEspacio", soap.Params{soap.P("espacioEditado", e)})
}

func (s *EspacioService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	return mutate(ctx, s.r, "eliminarEspacio", byID(id))
}
