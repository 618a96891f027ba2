package app

import (
	"context"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

type AmenidadService struct {
	r remote
	l *lookups
}

func (s *AmenidadService) List(ctx context.Context) ([]domain.Amenidad, error) {
	return cachedList(ctx, s.l, keyAmenidades, func(ctx context.Context) ([]domain.Amenidad, error) {
		return list[domain.Amenidad](ctx, s.r, "seleccionarAmenidades", nil)
	})
}

func (s *AmenidadService) ByID(ctx context.Context, id int64) (domain.Amenidad, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Amenidad{}, err
	}
	return one[domain.Amenidad](ctx, s.r, "seleccionarAmenidadPorId", byID(id))
}

func (s *AmenidadService) Create(ctx context.Context, a domain.Amenidad) (int64, error) {
	if err := domain.RequireText("Nombre", a.Nombre); err != nil {
		return 0, err
	}
	a.Id, a.EsActivo = 0, domain.Flag(true)
	id, err := insert(ctx, s.r, "insertarAmenidad", soap.Params{soap.P("nuevaAmenidad", a)})
	if err == nil {
		s.l.invalidate(ctx, keyAmenidades)
	}
	return id, err
}

func (s *AmenidadService) Update(ctx context.Context, a domain.Amenidad) error {
	if err := domain.RequireID("Id", a.Id); err != nil {
		return err
	}
	if err := domain.RequireText("Nombre", a.Nombre); err != nil {
		return err
	}
	a.UltimaFechaCambio = ""
	err := mutate(ctx, s.r, "actualizarAmenidad", soap.Params{soap.P("amenidadEditada", a)})
	s.l.invalidate(ctx, keyAmenidades)
	return err
}

func (s *AmenidadService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	err := mutate(ctx, s.r, "eliminarAmenidad", byID(id))
	s.l.invalidate(ctx, keyAmenidades)
	return err
}
