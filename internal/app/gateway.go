package app

import (
	"context"
	"time"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

// Gateway bundles the typed services, one per remote .asmx service.
type Gateway struct {
	Hoteles           *HotelService
	Espacios          *EspacioService
	Relaciones        *RelacionService
	Reservas          *ReservaService
	Pagos             *PagoService
	Politicas         *PoliticaService
	TiposServicio     *TipoService
	TiposAlimentacion *TipoService
	Usuarios          *UsuarioService
	Amenidades        *AmenidadService
	Integracion       *IntegracionService
}

// NewGateway wires every service. clientFor returns the client of a service
// name from Services; cache may be nil.
func NewGateway(clientFor func(service string) *soap.Client, cache domain.Cache, ttl time.Duration) *Gateway {
	l := &lookups{cache: cache, ttl: ttl}
	rm := func(svc string) remote { return remote{c: clientFor(svc), svc: svc} }
	return &Gateway{
		Hoteles:           &HotelService{r: rm(SvcHoteles), l: l},
		Espacios:          &EspacioService{r: rm(SvcEspacios)},
		Relaciones:        &RelacionService{r: rm(SvcRelaciones)},
		Reservas:          &ReservaService{r: rm(SvcReservas)},
		Pagos:             &PagoService{r: rm(SvcPagos)},
		Politicas:         &PoliticaService{r: rm(SvcPoliticas), l: l},
		TiposServicio:     &TipoService{r: rm(SvcTiposServicio), l: l, prefix: keyTiposServicioPrefix},
		TiposAlimentacion: &TipoService{r: rm(SvcTiposAlimentacion), l: l, prefix: keyTiposAlimentacionPrefix},
		Usuarios:          &UsuarioService{r: rm(SvcUsuarios)},
		Amenidades:        &AmenidadService{r: rm(SvcAmenidades), l: l},
		Integracion:       &IntegracionService{r: rm(SvcIntegracion), l: l},
	}
}

// Clients builds one client per catalogued service. endpoint maps a service
// name to its URL; the integration service speaks SOAP 1.2.
func Clients(endpoint func(service string) string, opts ...soap.Option) map[string]*soap.Client {
	out := make(map[string]*soap.Client, len(Services))
	for _, svc := range Services {
		o := append([]soap.Option{soap.WithService(svc)}, opts...)
		if svc == SvcIntegracion {
			o = append(o, soap.WithVersion(soap.V12))
		}
		out[svc] = soap.New(endpoint(svc), o...)
	}
	return out
}

// The gateway is the sweeper's and the detail view's remote side.
var (
	_ domain.HoldSource   = (*Gateway)(nil)
	_ domain.DetailSource = (*Gateway)(nil)
)

func (g *Gateway) RelacionesExpiradas(ctx context.Context) ([]domain.Relacion, error) {
	return g.Relaciones.Expired(ctx)
}

func (g *Gateway) DesbloquearRelacion(ctx context.Context, id int64) (bool, error) {
	return g.Relaciones.Release(ctx, id)
}

func (g *Gateway) ReservaPorID(ctx context.Context, id int64) (domain.Reserva, error) {
	return g.Reservas.ByID(ctx, id)
}

func (g *Gateway) RelacionesPorReserva(ctx context.Context, reservaID int64) ([]domain.Relacion, error) {
	return g.Relaciones.ByReserva(ctx, reservaID)
}

func (g *Gateway) PagosPorReserva(ctx context.Context, reservaID int64) ([]domain.Pago, error) {
	return g.Pagos.ByReserva(ctx, reservaID)
}

func (g *Gateway) EspacioDetalle(ctx context.Context, espacioID int64) (domain.EspacioDetallado, error) {
	return g.Integracion.Detail(ctx, espacioID)
}
