package app_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "cuenca_gateway/internal/adapters/redis"
	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/adapters/soap/soaptest"
	"cuenca_gateway/internal/app"
	"cuenca_gateway/internal/domain"
)

var fixedNow = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newGateway(t *testing.T, cache domain.Cache) (*app.Gateway, *soaptest.Server) {
	t.Helper()
	srv := soaptest.NewServer(t)
	clients := app.Clients(srv.Endpoint,
		soap.WithTimeout(2*time.Second),
		soap.WithClock(func() time.Time { return fixedNow }))
	g := app.NewGateway(func(svc string) *soap.Client { return clients[svc] }, cache, time.Minute)
	return g, srv
}

func TestHotels_ListIsCachedUntilAWrite(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	g, srv := newGateway(t, cache)
	ctx := context.Background()

	srv.Result(app.SvcHoteles, "seleccionarHoteles",
		`<Hotel><Id>1</Id><Nombre>Real de Cuenca</Nombre><EsActivo>true</EsActivo></Hotel>`)
	srv.Result(app.SvcHoteles, "insertarHotel", `7`)

	for i := 0; i < 2; i++ {
		hs, err := g.Hoteles.List(ctx)
		require.NoError(t, err)
		require.Len(t, hs, 1)
		assert.Equal(t, "Real de Cuenca", hs[0].Nombre)
	}
	assert.Len(t, srv.Calls(app.SvcHoteles, "seleccionarHoteles"), 1)

	id, err := g.Hoteles.Create(ctx, domain.Hotel{Nombre: "Nuevo"})
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)

	_, err = g.Hoteles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, srv.Calls(app.SvcHoteles, "seleccionarHoteles"), 2)
}

func TestHotels_CreateSendsFullRecord(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcHoteles, "insertarHotel", `3`)

	_, err := g.Hoteles.Create(context.Background(), domain.Hotel{Id: 99, Nombre: "Casa & Co"})
	require.NoError(t, err)

	c := srv.Calls(app.SvcHoteles, "insertarHotel")[0]
	assert.Equal(t, `"http://tempuri.org/insertarHotel"`, c.Header.Get("SOAPAction"))
	assert.Equal(t, "0", c.Param("nuevoHotel/Id"))
	assert.Equal(t, "Casa & Co", c.Param("nuevoHotel/Nombre"))
	assert.Equal(t, "true", c.Param("nuevoHotel/EsActivo"))
	assert.Equal(t, "2025-03-01T09:30:00", c.Param("nuevoHotel/FechaRegistro"))
}

func TestValidation_RejectsBeforeAnyCall(t *testing.T) {
	g, srv := newGateway(t, nil)
	ctx := context.Background()

	_, err := g.Hoteles.ByID(ctx, 0)
	assert.True(t, domain.IsValidation(err))
	_, err = g.Hoteles.Create(ctx, domain.Hotel{Nombre: "  "})
	assert.True(t, domain.IsValidation(err))
	err = g.Relaciones.Rate(ctx, 4, 6)
	assert.True(t, domain.IsValidation(err))
	_, err = g.Integracion.Search(ctx, domain.BusquedaServicios{Pagina: 2})
	assert.True(t, domain.IsValidation(err))
	_, err = g.Integracion.PreBook(ctx, domain.SolicitudPreReserva{FechaInicio: "a", FechaFin: "b"})
	assert.True(t, domain.IsValidation(err))

	assert.Empty(t, srv.Calls(app.SvcHoteles, "seleccionarHotelPorId"))
	assert.Empty(t, srv.Calls(app.SvcIntegracion, "buscarServicios"))
}

func TestMutations_FalseIsRejected(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcReservas, "cambiarEstadoReserva", `false`)

	err := g.Reservas.ChangeState(context.Background(), 5, domain.EstadoConfirmada)
	require.ErrorIs(t, err, domain.ErrRejected)

	c := srv.Calls(app.SvcReservas, "cambiarEstadoReserva")[0]
	assert.Equal(t, "5", c.Param("id"))
	assert.Equal(t, "Confirmada", c.Param("nuevoEstado"))
}

func TestReservas_CreateDefaults(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcReservas, "insertarReserva", `11`)

	id, err := g.Reservas.Create(context.Background(), domain.Reserva{UsuarioId: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 11, id)

	c := srv.Calls(app.SvcReservas, "insertarReserva")[0]
	assert.Equal(t, "Pendiente", c.Param("nuevaReserva/Estado"))
	assert.Len(t, c.Param("nuevaReserva/TokenSesion"), 36)
	assert.NotNil(t, c.Find("nuevaReserva/UsuarioExterno"), "nested user is always sent")
	assert.Equal(t, "true", c.Param("nuevaReserva/EsActivo"))
	assert.Equal(t, "true", c.Param("nuevaReserva/Usuarios/EsActivo"))
	assert.Equal(t, "true", c.Param("nuevaReserva/UsuarioExterno/EsActivo"))
}

func TestUpdates_KeepRecordsActiveUnlessToldOtherwise(t *testing.T) {
	g, srv := newGateway(t, nil)
	ctx := context.Background()
	srv.Result(app.SvcEspacios, "actualizarEspacio", `true`)
	srv.Result(app.SvcPagos, "actualizarPago", `true`)

	require.NoError(t, g.Espacios.Update(ctx, domain.Espacio{Id: 3, HotelId: 1, Nombre: "Suite"}))
	assert.Equal(t, "true", srv.Calls(app.SvcEspacios, "actualizarEspacio")[0].Param("espacioEditado/EsActivo"))

	require.NoError(t, g.Pagos.Update(ctx, domain.Pago{Id: 8, ReservaId: 2, Monto: 10, EsActivo: domain.Flag(false)}))
	assert.Equal(t, "false", srv.Calls(app.SvcPagos, "actualizarPago")[0].Param("pagoEditado/EsActivo"))
}

func TestHotels_EmptyResultIsNotFound(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcHoteles, "seleccionarHotelPorId", ``)

	_, err := g.Hoteles.ByID(context.Background(), 5)
	assert.True(t, soap.IsNoResult(err), "got %v", err)
}

func TestRelaciones_UnlockRefusalIsRejected(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcRelaciones, "desbloquearRelacion", `false`)

	require.ErrorIs(t, g.Relaciones.Unlock(context.Background(), 4), domain.ErrRejected)

	ok, err := g.Relaciones.Release(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReservas_ComputeTotalsIsVoid(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.NoResult(app.SvcReservas, "calcularTotales")

	err := g.Reservas.ComputeTotals(context.Background(), domain.Reserva{Id: 3}, 15)
	require.NoError(t, err)
	assert.Equal(t, "15", srv.Calls(app.SvcReservas, "calcularTotales")[0].Param("porcentajeIVA"))
}

func TestRelaciones_ByReservaEmpty(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.NoResult(app.SvcRelaciones, "seleccionarPorReserva")

	rels, err := g.Relaciones.ByReserva(context.Background(), 8)
	require.NoError(t, err)
	assert.NotNil(t, rels)
	assert.Empty(t, rels)
}

func TestRelaciones_RateSendsZero(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcRelaciones, "actualizarPuntuacion", `true`)

	require.NoError(t, g.Relaciones.Rate(context.Background(), 4, 0))
	c := srv.Calls(app.SvcRelaciones, "actualizarPuntuacion")[0]
	assert.Equal(t, "4", c.Param("idRelacion"))
	assert.Equal(t, "0", c.Param("puntuacion"))
}

func TestPagos_ByUsuarioSendsZeroForMissingID(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcPagos, "obtenerPagosPorUsuario",
		`<DTO_WS_IntegracionPago><PagoId>1</PagoId><Monto>12.5</Monto></DTO_WS_IntegracionPago>`)

	ps, err := g.Pagos.ByUsuario(context.Background(), 0, 9)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, 12.5, ps[0].Monto)

	c := srv.Calls(app.SvcPagos, "obtenerPagosPorUsuario")[0]
	assert.Equal(t, "0", c.Param("usuarioId"))
	assert.Equal(t, "9", c.Param("usuarioExternoId"))
}

func TestPagos_ByIDNotFound(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.NoResult(app.SvcPagos, "seleccionarPagoPorId")

	_, err := g.Pagos.ByID(context.Background(), 40)
	assert.True(t, soap.IsNoResult(err))
}

func TestUsuarios_LoginFailuresAreInvalidCredentials(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.NoResult(app.SvcUsuarios, "iniciarSesion")

	_, err := g.Usuarios.Login(context.Background(), "a@b.ec", "x")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUsuarios_HashIsScrubbed(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcUsuarios, "iniciarSesion",
		`<Id>4</Id><Email>a@b.ec</Email><PasswordHash>secret</PasswordHash>`)
	srv.Result(app.SvcUsuarios, "seleccionarUsuarios",
		`<Usuarios><Id>4</Id><PasswordHash>secret</PasswordHash></Usuarios>`)

	u, err := g.Usuarios.Login(context.Background(), "a@b.ec", "pw")
	require.NoError(t, err)
	assert.EqualValues(t, 4, u.Id)
	assert.Empty(t, u.PasswordHash)

	us, err := g.Usuarios.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, us[0].PasswordHash)
}

func TestTipos_SharedContractDifferentServices(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcTiposServicio, "seleccionarTipos", `<TipoServicio><Id>1</Id><Nombre>Suite</Nombre></TipoServicio>`)
	srv.Result(app.SvcTiposAlimentacion, "seleccionarTipos", `<TipoAlimentacion><Id>2</Id><Nombre>Desayuno</Nombre></TipoAlimentacion>`)

	ts, err := g.TiposServicio.List(context.Background())
	require.NoError(t, err)
	ta, err := g.TiposAlimentacion.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Suite", ts[0].Nombre)
	assert.Equal(t, "Desayuno", ta[0].Nombre)
}

func TestIntegracion_SearchUses12AndDefaults(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcIntegracion, "buscarServicios", `
		<PaginaActual>1</PaginaActual><TamanoPagina>10</TamanoPagina><TotalRegistros>1</TotalRegistros>
		<Datos><DTO_WS_IntegracionDetalleEspacio>
			<Id>5</Id><Nombre>Suite</Nombre><Amenidades><string>Wifi</string><string>Spa</string></Amenidades>
		</DTO_WS_IntegracionDetalleEspacio></Datos>`)

	page, err := g.Integracion.Search(context.Background(), domain.BusquedaServicios{Ubicacion: "Cuenca"})
	require.NoError(t, err)
	require.Len(t, page.Datos, 1)
	assert.Equal(t, []string{"Wifi", "Spa"}, page.Datos[0].Amenidades)

	c := srv.Calls(app.SvcIntegracion, "buscarServicios")[0]
	assert.Empty(t, c.Header.Get("SOAPAction"))
	assert.True(t, strings.HasPrefix(c.Header.Get("Content-Type"), "application/soap+xml"))
	assert.Equal(t, "1", c.Param("pagina"))
	assert.Equal(t, "10", c.Param("tamanoPagina"))
	assert.Nil(t, c.Find("hotel"), "unset filters are omitted")
}

func TestIntegracion_PreBookSendsSpaceList(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Result(app.SvcIntegracion, "crearPreReserva", `<ReservaId>30</ReservaId><ExitoInt>1</ExitoInt>`)
	uid := int64(2)

	pr, err := g.Integracion.PreBook(context.Background(), domain.SolicitudPreReserva{
		Espacios: []int64{4, 6}, UsuarioId: &uid, FechaInicio: "2025-03-01", FechaFin: "2025-03-03",
	})
	require.NoError(t, err)
	assert.True(t, pr.Exito())

	c := srv.Calls(app.SvcIntegracion, "crearPreReserva")[0]
	lst := c.Find("listaEspacios")
	require.NotNil(t, lst)
	require.Len(t, lst.ChildElements(), 2)
	assert.Equal(t, "6", lst.ChildElements()[1].Text())
	assert.Nil(t, c.Find("usuarioExternoId"))
}

func TestIntegracion_HotelsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	g, srv := newGateway(t, redisad.New(mr.Addr(), "", 0))
	srv.Result(app.SvcIntegracion, "obtenerHoteles", `<string>Real de Cuenca</string>`)

	for i := 0; i < 3; i++ {
		hs, err := g.Integracion.Hotels(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Real de Cuenca"}, hs)
	}
	assert.Len(t, srv.Calls(app.SvcIntegracion, "obtenerHoteles"), 1)
}

func TestRemoteErrorsPropagate(t *testing.T) {
	g, srv := newGateway(t, nil)
	srv.Status(app.SvcEspacios, "seleccionarEspacios", http.StatusServiceUnavailable, "down")
	srv.Fault(app.SvcIntegracion, "CancelarReservaIntegracion", "booking not found")

	_, err := g.Espacios.List(context.Background())
	var se *soap.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)

	_, err = g.Integracion.Cancel(context.Background(), 12, "")
	var fe *soap.FaultError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "booking not found", fe.Reason)
}
