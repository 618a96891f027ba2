package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	server "cuenca_gateway/internal/adapters/http_server"
	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/adapters/soap/soaptest"
	"cuenca_gateway/internal/app"
)

type reply struct {
	Exito        bool            `json:"exito"`
	Datos        json.RawMessage `json:"datos"`
	Error        string          `json:"error"`
	Tipo         string          `json:"tipo"`
	EstadoRemoto int             `json:"estado_remoto"`
	Detalle      string          `json:"detalle"`
}

func newAPI(t *testing.T, opts ...soap.Option) (*httptest.Server, *soaptest.Server) {
	t.Helper()
	remote := soaptest.NewServer(t)
	opts = append([]soap.Option{soap.WithTimeout(2 * time.Second)}, opts...)
	clients := app.Clients(remote.Endpoint, opts...)
	g := app.NewGateway(func(svc string) *soap.Client { return clients[svc] }, nil, time.Minute)

	srv := server.New(server.Options{CORSOrigins: []string{"*"}})
	srv.MountHandlers(&server.Handlers{G: g})
	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)
	return api, remote
}

func do(t *testing.T, method, url, body string, hdr ...string) (*http.Response, reply) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var rp reply
	if len(b) > 0 {
		require.NoError(t, json.Unmarshal(b, &rp), string(b))
	}
	return res, rp
}

func TestListHotels_EnvelopeAndETag(t *testing.T) {
	api, remote := newAPI(t)
	remote.Result(app.SvcHoteles, "seleccionarHoteles",
		`<Hotel><Id>1</Id><Nombre>Real de Cuenca</Nombre></Hotel><Hotel><Id>2</Id><Nombre>Otro</Nombre></Hotel>`)

	res, rp := do(t, http.MethodGet, api.URL+"/v1/hoteles", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, rp.Exito)
	var hs []struct {
		Id     int64
		Nombre string
	}
	require.NoError(t, json.Unmarshal(rp.Datos, &hs))
	require.Len(t, hs, 2)
	assert.Equal(t, "Otro", hs[1].Nombre)

	etag := res.Header.Get("ETag")
	require.True(t, strings.HasPrefix(etag, `W/"`))
	res, _ = do(t, http.MethodGet, api.URL+"/v1/hoteles", "", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, res.StatusCode)
}

func TestEmptyListIsArray(t *testing.T) {
	api, remote := newAPI(t)
	remote.NoResult(app.SvcReservas, "obtenerReservasExpiradas")

	res, rp := do(t, http.MethodGet, api.URL+"/v1/reservas/expiradas", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `[]`, string(rp.Datos))
}

func TestStatusTable(t *testing.T) {
	api, remote := newAPI(t)
	remote.NoResult(app.SvcHoteles, "seleccionarHotelPorId")
	remote.Status(app.SvcEspacios, "seleccionarEspacios", http.StatusInternalServerError, "<html>boom</html>")
	remote.Fault(app.SvcPagos, "seleccionarPagos", "Server was unable to process request")
	remote.Result(app.SvcAmenidades, "seleccionarAmenidades", `<Amenidades><Id>1</Id>`)
	remote.Result(app.SvcReservas, "eliminarReserva", `false`)
	remote.Result(app.SvcRelaciones, "desbloquearRelacion", `false`)
	remote.Result(app.SvcPoliticas, "seleccionarPoliticaPorId", ``)

	cases := []struct {
		name, method, path, body string
		status                   int
		tipo                     string
	}{
		{"bad id", http.MethodGet, "/v1/hoteles/abc", "", http.StatusBadRequest, "validacion"},
		{"not found", http.MethodGet, "/v1/hoteles/9", "", http.StatusNotFound, "no_encontrado"},
		{"remote status", http.MethodGet, "/v1/espacios", "", http.StatusBadGateway, "error_remoto"},
		{"fault", http.MethodGet, "/v1/pagos", "", http.StatusBadGateway, "fault"},
		{"malformed reply", http.MethodGet, "/v1/amenidades", "", http.StatusBadGateway, "respuesta_invalida"},
		{"rejected", http.MethodDelete, "/v1/reservas/3", "", http.StatusConflict, "rechazado"},
		{"unlock refused", http.MethodPost, "/v1/relaciones/4/desbloquear", "", http.StatusConflict, "rechazado"},
		{"empty record", http.MethodGet, "/v1/politicas/5", "", http.StatusNotFound, "no_encontrado"},
		{"bad json", http.MethodPost, "/v1/hoteles", "{", http.StatusBadRequest, "validacion"},
		{"search needs filter", http.MethodGet, "/v1/integracion/buscar?pagina=1", "", http.StatusBadRequest, "validacion"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, rp := do(t, tc.method, api.URL+tc.path, tc.body)
			assert.Equal(t, tc.status, res.StatusCode)
			assert.False(t, rp.Exito)
			assert.Equal(t, tc.tipo, rp.Tipo)
			assert.NotEmpty(t, rp.Error)
		})
	}

	_, rp := do(t, http.MethodGet, api.URL+"/v1/espacios", "")
	assert.Equal(t, http.StatusInternalServerError, rp.EstadoRemoto)
	assert.Equal(t, "<html>boom</html>", rp.Detalle)
}

func TestRemoteDetailIsClippedOnRuneBoundary(t *testing.T) {
	api, remote := newAPI(t)
	body := strings.Repeat("a", 511) + "ñandú"
	remote.Status(app.SvcEspacios, "seleccionarEspacios", http.StatusInternalServerError, body)

	res, rp := do(t, http.MethodGet, api.URL+"/v1/espacios", "")
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Equal(t, strings.Repeat("a", 511)+"...", rp.Detalle)
	assert.NotContains(t, rp.Detalle, "\uFFFD")
}

func TestRemoteTimeoutIs504(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)
	clients := app.Clients(func(string) string { return slow.URL }, soap.WithTimeout(50*time.Millisecond))
	g := app.NewGateway(func(svc string) *soap.Client { return clients[svc] }, nil, 0)
	srv := server.New(server.Options{})
	srv.MountHandlers(&server.Handlers{G: g})
	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)

	res, rp := do(t, http.MethodGet, api.URL+"/v1/usuarios", "")
	assert.Equal(t, http.StatusGatewayTimeout, res.StatusCode)
	assert.Equal(t, "tiempo_agotado", rp.Tipo)
}

func TestUnreachableRemoteIs503(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	clients := app.Clients(func(string) string { return url }, soap.WithTimeout(time.Second))
	g := app.NewGateway(func(svc string) *soap.Client { return clients[svc] }, nil, 0)
	srv := server.New(server.Options{})
	srv.MountHandlers(&server.Handlers{G: g})
	api := httptest.NewServer(srv.Mux())
	t.Cleanup(api.Close)

	res, rp := do(t, http.MethodGet, api.URL+"/v1/politicas", "")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
	assert.Equal(t, "transporte", rp.Tipo)
}

func TestCreateAndUpdateHotel(t *testing.T) {
	api, remote := newAPI(t)
	remote.Result(app.SvcHoteles, "insertarHotel", `12`)
	remote.Result(app.SvcHoteles, "actualizarHotel", `true`)

	res, rp := do(t, http.MethodPost, api.URL+"/v1/hoteles", `{"Nombre":"Nuevo"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.JSONEq(t, `{"id":12}`, string(rp.Datos))

	res, rp = do(t, http.MethodPut, api.URL+"/v1/hoteles/12", `{"Id":1,"Nombre":"Renombrado"}`)
	require.Equal(t, http.StatusOK, res.StatusCode, rp.Error)
	assert.True(t, rp.Exito)

	c := remote.Calls(app.SvcHoteles, "actualizarHotel")[0]
	assert.Equal(t, "12", c.Param("hotelEditado/Id"), "path id wins")
	assert.Equal(t, "Renombrado", c.Param("hotelEditado/Nombre"))
	assert.Equal(t, "true", c.Param("hotelEditado/EsActivo"), "an omitted flag keeps the hotel active")

	res, rp = do(t, http.MethodPut, api.URL+"/v1/hoteles/12", `{"Nombre":"Cerrado","EsActivo":false}`)
	require.Equal(t, http.StatusOK, res.StatusCode, rp.Error)
	assert.Equal(t, "false", remote.Calls(app.SvcHoteles, "actualizarHotel")[1].Param("hotelEditado/EsActivo"))
}

func TestUnlockRelation(t *testing.T) {
	api, remote := newAPI(t)
	remote.Result(app.SvcRelaciones, "desbloquearRelacion", `true`)

	res, rp := do(t, http.MethodPost, api.URL+"/v1/relaciones/4/desbloquear", "")
	require.Equal(t, http.StatusOK, res.StatusCode, rp.Error)
	assert.True(t, rp.Exito)
	assert.Equal(t, "4", remote.Calls(app.SvcRelaciones, "desbloquearRelacion")[0].Param("id"))
}

func TestNonNumericCostFallsBackToZero(t *testing.T) {
	api, remote := newAPI(t)
	remote.Result(app.SvcRelaciones, "calcularCosto", `NaN`)

	res, rp := do(t, http.MethodGet, api.URL+"/v1/espacios/3/costo?fechaInicio=2025-03-01&fechaFin=2025-03-04", "")
	require.Equal(t, http.StatusOK, res.StatusCode, rp.Error)
	assert.JSONEq(t, `0`, string(rp.Datos))
}

func TestLogin(t *testing.T) {
	api, remote := newAPI(t)
	remote.NoResult(app.SvcUsuarios, "iniciarSesion")

	res, rp := do(t, http.MethodPost, api.URL+"/v1/usuarios/sesion", `{"email":"a@b.ec","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "credenciales", rp.Tipo)
}

func TestReservationDetail(t *testing.T) {
	api, remote := newAPI(t)
	remote.Result(app.SvcReservas, "seleccionarReservaPorId", `<Id>5</Id><Estado>Pendiente</Estado>`)
	remote.Result(app.SvcRelaciones, "seleccionarPorReserva",
		`<RESXESP><Id>50</Id><ReservaId>5</ReservaId><EspacioId>7</EspacioId></RESXESP>`)
	remote.NoResult(app.SvcPagos, "seleccionarPagosPorReserva")
	remote.Result(app.SvcIntegracion, "obtenerDetalleServicio", `<Id>7</Id><NombreHotel>Real de Cuenca</NombreHotel>`)

	res, rp := do(t, http.MethodGet, api.URL+"/v1/reservas/5/detalle", "")
	require.Equal(t, http.StatusOK, res.StatusCode, rp.Error)
	var d struct {
		Reserva  struct{ Id int64 }
		Espacios []struct {
			Detalle *struct{ NombreHotel string }
		}
		Pagos []any
	}
	require.NoError(t, json.Unmarshal(rp.Datos, &d))
	assert.EqualValues(t, 5, d.Reserva.Id)
	require.Len(t, d.Espacios, 1)
	require.NotNil(t, d.Espacios[0].Detalle)
	assert.Equal(t, "Real de Cuenca", d.Espacios[0].Detalle.NombreHotel)
	assert.NotNil(t, d.Pagos)
}

func TestIntegrationSearchQuery(t *testing.T) {
	api, remote := newAPI(t)
	remote.Result(app.SvcIntegracion, "buscarServicios", `<PaginaActual>2</PaginaActual><Datos/>`)

	res, rp := do(t, http.MethodGet, api.URL+"/v1/integracion/buscar?hotel=Real&puntuacion=0&pagina=2", "")
	require.Equal(t, http.StatusOK, res.StatusCode, rp.Error)

	c := remote.Calls(app.SvcIntegracion, "buscarServicios")[0]
	assert.Equal(t, "Real", c.Param("hotel"))
	assert.Equal(t, "0", c.Param("puntuacion"))
	assert.Equal(t, "2", c.Param("pagina"))
	assert.Equal(t, "10", c.Param("tamanoPagina"))
}

func TestHealthzAndCORS(t *testing.T) {
	api, _ := newAPI(t)
	res, err := http.Get(api.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	req, _ := http.NewRequest(http.MethodOptions, api.URL+"/v1/hoteles", nil)
	req.Header.Set("Origin", "http://front.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	res, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func TestAdminRoutesNeedSweeper(t *testing.T) {
	api, _ := newAPI(t)
	res, err := http.Get(api.URL + "/v1/admin/liberaciones")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
