package app

import (
	"context"
	"fmt"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/shared"
)

// Remote services, named after their .asmx file.
const (
	SvcHoteles           = "WS_GestionHotel"
	SvcEspacios          = "WS_GestionEspacios"
	SvcRelaciones        = "WS_GestionResXEsp"
	SvcReservas          = "WS_GestionReservas"
	SvcPagos             = "WS_GestionPagos"
	SvcPoliticas         = "WS_GestionPoliticas"
	SvcTiposServicio     = "WS_GestionTipoServicio"
	SvcTiposAlimentacion = "WS_GestionTipoAlimentacion"
	SvcUsuarios          = "WS_GestionUsuarios"
	SvcAmenidades        = "WS_GestionAmenidades"
	SvcIntegracion       = shared.IntegrationService
)

// Catalog declares every remote operation. Request and result shapes live
// in the typed service methods; this table only carries wire metadata.
var Catalog = map[string][]soap.Operation{
	SvcHoteles: {
		{Name: "seleccionarHoteles", Item: "Hotel"},
		{Name: "seleccionarHotelPorId"},
		{Name: "buscarHotelPorNombre", Item: "Hotel"},
		{Name: "insertarHotel"},
		{Name: "actualizarHotel"},
		{Name: "eliminarHotel"},
		{Name: "obtenerEspaciosDelHotel", Item: "Espacios"},
	},
	SvcEspacios: {
		{Name: "seleccionarEspacios", Item: "Espacios"},
		{Name: "insertarEspacio"},
		{Name: "actualizarEspacio"},
		{Name: "eliminarEspacio"},
	},
	SvcRelaciones: {
		{Name: "seleccionarRelaciones", Item: "RESXESP"},
		{Name: "seleccionarPorReserva", Item: "RESXESP"},
		{Name: "seleccionarPorId"},
		{Name: "seleccionarPorEspacio", Item: "RESXESP"},
		{Name: "obtenerRelacionesExpiradas", Item: "RESXESP"},
		{Name: "insertarRelacion"},
		{Name: "actualizarRelacion"},
		{Name: "eliminarRelacion"},
		{Name: "desbloquearRelacion"},
		{Name: "espacioDisponible"},
		{Name: "calcularCosto"},
		{Name: "actualizarPuntuacion"},
	},
	SvcReservas: {
		{Name: "seleccionarReservas", Item: "Reservas"},
		{Name: "seleccionarReservasPorUsuario", Item: "Reservas"},
		{Name: "seleccionarReservaPorId"},
		{Name: "obtenerReservasExpiradas", Item: "Reservas"},
		{Name: "obtenerReservasBloqueadas", Item: "Reservas"},
		{Name: "insertarReserva"},
		{Name: "actualizarReserva"},
		{Name: "eliminarReserva"},
		{Name: "cambiarEstadoReserva"},
		{Name: "calcularTotales"},
		{Name: "bloquearReserva"},
	},
	SvcPagos: {
		{Name: "seleccionarPagos", Item: "Pagos"},
		{Name: "seleccionarPagosPorReserva", Item: "Pagos"},
		{Name: "obtenerPagosPorEstado", Item: "Pagos"},
		{Name: "seleccionarPagoPorId"},
		{Name: "buscarPorReferencia"},
		{Name: "obtenerPagosPorUsuario", Item: "DTO_WS_IntegracionPago"},
		{Name: "calcularTotalPagado"},
		{Name: "insertarPago"},
		{Name: "actualizarPago"},
		{Name: "eliminarPago"},
	},
	SvcPoliticas: {
		{Name: "seleccionarPoliticas", Item: "Politicas"},
		{Name: "seleccionarPoliticaPorId"},
		{Name: "buscarPoliticasPorTexto", Item: "Politicas"},
		{Name: "existePolitica"},
		{Name: "insertarPolitica"},
		{Name: "actualizarPolitica"},
		{Name: "eliminarPolitica"},
	},
	SvcTiposServicio:     tipoOps("TipoServicio"),
	SvcTiposAlimentacion: tipoOps("TipoAlimentacion"),
	SvcUsuarios: {
		{Name: "seleccionarUsuarios", Item: "Usuarios"},
		{Name: "seleccionarInactivos", Item: "Usuarios"},
		{Name: "seleccionarPorId"},
		{Name: "iniciarSesion"},
		{Name: "insertarUsuario"},
		{Name: "actualizarUsuario"},
		{Name: "eliminarUsuario"},
		{Name: "reactivarUsuario"},
	},
	SvcAmenidades: {
		{Name: "seleccionarAmenidades", Item: "Amenidades"},
		{Name: "seleccionarAmenidadPorId"},
		{Name: "insertarAmenidad"},
		{Name: "actualizarAmenidad"},
		{Name: "eliminarAmenidad"},
	},
	SvcIntegracion: {
		{Name: "seleccionarEspaciosDetalladosPorPaginas", Version: soap.V12},
		{Name: "buscarServicios", Version: soap.V12},
		{Name: "obtenerDetalleServicio", Version: soap.V12},
		{Name: "obtenerHoteles", Version: soap.V12, Item: "string"},
		{Name: "obtenerUbicaciones", Version: soap.V12, Item: "string"},
		{Name: "verificarDisponibilidad", Version: soap.V12},
		{Name: "crearPreReserva", Version: soap.V12},
		{Name: "cotizarReserva", Version: soap.V12},
		{Name: "ConfirmarReserva", Version: soap.V12},
		{Name: "CancelarReservaIntegracion", Version: soap.V12},
	},
}

// The two taxonomy services expose the same contract.
func tipoOps(item string) []soap.Operation {
	return []soap.Operation{
		{Name: "seleccionarTipos", Item: item},
		{Name: "seleccionarInactivos", Item: item},
		{Name: "seleccionarPorId"},
		{Name: "seleccionarPorNombre"},
		{Name: "insertarTipo"},
		{Name: "actualizarTipo"},
		{Name: "eliminarTipo"},
		{Name: "reactivarTipo"},
	}
}

// Services lists every catalogued service in a stable order.
var Services = []string{
	SvcHoteles, SvcEspacios, SvcRelaciones, SvcReservas, SvcPagos, SvcPoliticas,
	SvcTiposServicio, SvcTiposAlimentacion, SvcUsuarios, SvcAmenidades, SvcIntegracion,
}

// Lookup finds an operation by service and name.
func Lookup(service, name string) (soap.Operation, bool) {
	for _, op := range Catalog[service] {
		if op.Name == name {
			return op, true
		}
	}
	return soap.Operation{}, false
}

// remote binds a client to its catalogued service.
type remote struct {
	c   *soap.Client
	svc string
}

func (r remote) op(name string) soap.Operation {
	op, ok := Lookup(r.svc, name)
	if !ok {
		panic(fmt.Sprintf("app: %s has no operation %s", r.svc, name))
	}
	return op
}

func list[T any](ctx context.Context, r remote, name string, req any) ([]T, error) {
	return soap.List[T](ctx, r.c, r.op(name), req)
}

func one[T any](ctx context.Context, r remote, name string, req any) (T, error) {
	return soap.One[T](ctx, r.c, r.op(name), req)
}

func exec(ctx context.Context, r remote, name string, req any) error {
	return soap.Exec(ctx, r.c, r.op(name), req)
}

func byID(id int64) soap.Params { return soap.Params{soap.P("id", id)} }
