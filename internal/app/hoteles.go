package app

import (
	"context"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

type HotelService struct {
	r remote
	l *lookups
}

func (s *HotelService) List(ctx context.Context) ([]domain.Hotel, error) {
	return cachedList(ctx, s.l, keyHoteles, func(ctx context.Context) ([]domain.Hotel, error) {
		return list[domain.Hotel](ctx, s.r, "seleccionarHoteles", nil)
	})
}

func (s *HotelService) ByID(ctx context.Context, id int64) (domain.Hotel, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Hotel{}, err
	}
	return one[domain.Hotel](ctx, s.r, "seleccionarHotelPorId", byID(id))
}

func (s *HotelService) SearchByName(ctx context.Context, nombre string) ([]domain.Hotel, error) {
	if err := domain.RequireText("nombre", nombre); err != nil {
		return nil, err
	}
	return list[domain.Hotel](ctx, s.r, "buscarHotelPorNombre", soap.Params{soap.P("nombre", nombre)})
}

func (s *HotelService) Create(ctx context.Context, h domain.Hotel) (int64, error) {
	if err := domain.RequireText("Nombre", h.Nombre); err != nil {
		return 0, err
	}
	h.Id, h.EsActivo = 0, domain.Flag(true)
	id, err := insert(ctx, s.r, "insertarHotel", soap.Params{soap.P("nuevoHotel", h)})
	if err == nil {
		s.l.invalidate(ctx, keyHoteles, keyIntegracionHoteles)
	}
	return id, err
}

func (s *HotelService) Update(ctx context.Context, h domain.Hotel) error {
	if err := domain.RequireID("Id", h.Id); err != nil {
		return err
	}
	if err := domain.RequireText("Nombre", h.Nombre); err != nil {
		return err
	}
	h.UltimaFechaCambio = ""
	err := mutate(ctx, s.r, "actualizarHotel", soap.Params{soap.P("hotelEditado", h)})
	s.l.invalidate(ctx, keyHoteles, keyIntegracionHoteles)
	return err
}

// Delete is a soft delete on the remote side.
func (s *HotelService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	err := mutate(ctx, s.r, "eliminarHotel", byID(id))
	s.l.invalidate(ctx, keyHoteles, keyIntegracionHoteles)
	return err
}

func (s *HotelService) Spaces(ctx context.Context, hotelID int64) ([]domain.Espacio, error) {
	if err := domain.RequireID("hotelId", hotelID); err != nil {
		return nil, err
	}
	return list[domain.Espacio](ctx, s.r, "obtenerEspaciosDelHotel", soap.Params{soap.P("hotelId", hotelID)})
}
