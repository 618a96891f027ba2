package app

import (
	"context"

	"cuenca_gateway/internal/domain"
)

// IntegracionService talks to the aggregation service (SOAP 1.2).
type IntegracionService struct {
	r remote
	l *lookups
}

type paginado struct {
	Pagina       int `soap:"pagina,default=1"`
	TamanoPagina int `soap:"tamanoPagina,default=10"`
}

func checkPage(pagina, tamano int) error {
	if pagina < 0 {
		return domain.Invalid("pagina", "must not be negative")
	}
	if tamano < 0 || tamano > 100 {
		return domain.Invalid("tamanoPagina", "must be between 1 and 100")
	}
	return nil
}

// Page lists detailed spaces. Zero paging values fall back to page 1 of 10.
func (s *IntegracionService) Page(ctx context.Context, pagina, tamano int) (domain.PaginaEspacios, error) {
	if err := checkPage(pagina, tamano); err != nil {
		return domain.PaginaEspacios{}, err
	}
	return one[domain.PaginaEspacios](ctx, s.r, "seleccionarEspaciosDetalladosPorPaginas", paginado{pagina, tamano})
}

func (s *IntegracionService) Search(ctx context.Context, q domain.BusquedaServicios) (domain.PaginaEspacios, error) {
	if !q.HasFilter() {
		return domain.PaginaEspacios{}, domain.Invalid("", "at least one search filter is required")
	}
	if err := checkPage(q.Pagina, q.TamanoPagina); err != nil {
		return domain.PaginaEspacios{}, err
	}
	if q.Puntuacion != nil && (*q.Puntuacion < 0 || *q.Puntuacion > 5) {
		return domain.PaginaEspacios{}, domain.Invalid("puntuacion", "must be between 0 and 5")
	}
	return one[domain.PaginaEspacios](ctx, s.r, "buscarServicios", q)
}

func (s *IntegracionService) Detail(ctx context.Context, espacioID int64) (domain.EspacioDetallado, error) {
	if err := domain.RequireID("id", espacioID); err != nil {
		return domain.EspacioDetallado{}, err
	}
	return one[domain.EspacioDetallado](ctx, s.r, "obtenerDetalleServicio", byID(espacioID))
}

// Hotels lists the hotel names known to the aggregation service.
func (s *IntegracionService) Hotels(ctx context.Context) ([]string, error) {
	return cachedList(ctx, s.l, keyIntegracionHoteles, func(ctx context.Context) ([]string, error) {
		return list[string](ctx, s.r, "obtenerHoteles", nil)
	})
}

func (s *IntegracionService) Locations(ctx context.Context) ([]string, error) {
	return cachedList(ctx, s.l, keyIntegracionUbicaciones, func(ctx context.Context) ([]string, error) {
		return list[string](ctx, s.r, "obtenerUbicaciones", nil)
	})
}

func (s *IntegracionService) Availability(ctx context.Context, espacioID int64, from, to string) (bool, error) {
	if err := domain.RequireID("espacioId", espacioID); err != nil {
		return false, err
	}
	if err := domain.RequireRange(from, to); err != nil {
		return false, err
	}
	return one[bool](ctx, s.r, "verificarDisponibilidad", rangoEspacio{espacioID, from, to})
}

func (s *IntegracionService) PreBook(ctx context.Context, req domain.SolicitudPreReserva) (domain.PreReserva, error) {
	if len(req.Espacios) == 0 {
		return domain.PreReserva{}, domain.Invalid("listaEspacios", "at least one space is required")
	}
	for _, id := range req.Espacios {
		if err := domain.RequireID("listaEspacios", id); err != nil {
			return domain.PreReserva{}, err
		}
	}
	if req.UsuarioId == nil && req.UsuarioExternoId == nil {
		return domain.PreReserva{}, domain.Invalid("usuarioId", "a user or external user is required")
	}
	if err := domain.RequireRange(req.FechaInicio, req.FechaFin); err != nil {
		return domain.PreReserva{}, err
	}
	return one[domain.PreReserva](ctx, s.r, "crearPreReserva", req)
}

func (s *IntegracionService) Quote(ctx context.Context, req domain.SolicitudCotizacion) (domain.Cotizacion, error) {
	if err := domain.RequireID("espacioId", req.EspacioId); err != nil {
		return domain.Cotizacion{}, err
	}
	if err := domain.RequireText("checkIn", req.CheckIn); err != nil {
		return domain.Cotizacion{}, err
	}
	if err := domain.RequireText("checkOut", req.CheckOut); err != nil {
		return domain.Cotizacion{}, err
	}
	if req.CostoPorNoche != nil && *req.CostoPorNoche < 0 {
		return domain.Cotizacion{}, domain.Invalid("costoPorNoche", "must not be negative")
	}
	return one[domain.Cotizacion](ctx, s.r, "cotizarReserva", req)
}

func (s *IntegracionService) Confirm(ctx context.Context, req domain.SolicitudConfirmacion) (domain.Confirmacion, error) {
	if err := domain.RequireID("reservaId", req.ReservaId); err != nil {
		return domain.Confirmacion{}, err
	}
	if req.Monto != nil && *req.Monto < 0 {
		return domain.Confirmacion{}, domain.Invalid("monto", "must not be negative")
	}
	return one[domain.Confirmacion](ctx, s.r, "ConfirmarReserva", req)
}

type cancelacion struct {
	BookingId int64  `soap:"bookingId"`
	Motivo    string `soap:"motivo"`
}

func (s *IntegracionService) Cancel(ctx context.Context, bookingID int64, motivo string) (domain.Cancelacion, error) {
	if err := domain.RequireID("bookingId", bookingID); err != nil {
		return domain.Cancelacion{}, err
	}
	return one[domain.Cancelacion](ctx, s.r, "CancelarReservaIntegracion", cancelacion{bookingID, motivo})
}
