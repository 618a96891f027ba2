package domain

// Shapes of the aggregation service. Integer flags (ExitoInt, EsActivoInt,
// EsBloqueadaInt) are kept as sent; Exito() reads the success flag.

type EspacioDetallado struct {
	Id                     int64    `soap:"Id" json:"Id"`
	Nombre                 string   `soap:"Nombre" json:"Nombre"`
	NombreHotel            string   `soap:"NombreHotel" json:"NombreHotel"`
	NombreTipoServicio     string   `soap:"NombreTipoServicio" json:"NombreTipoServicio"`
	NombreTipoAlimentacion string   `soap:"NombreTipoAlimentacion" json:"NombreTipoAlimentacion"`
	Moneda                 string   `soap:"Moneda" json:"Moneda"`
	CostoDiario            float64  `soap:"CostoDiario" json:"CostoDiario"`
	Ubicacion              string   `soap:"Ubicacion" json:"Ubicacion"`
	DescripcionDelLugar    string   `soap:"DescripcionDelLugar" json:"DescripcionDelLugar"`
	Capacidad              string   `soap:"Capacidad" json:"Capacidad"`
	Puntuacion             int      `soap:"Puntuacion" json:"Puntuacion"`
	EsActivo               bool     `soap:"EsActivo" json:"EsActivo"`
	Amenidades             []string `soap:"Amenidades>string" json:"Amenidades"`
	Politicas              []string `soap:"Politicas>string" json:"Politicas"`
	Imagenes               []string `soap:"Imagenes>string" json:"Imagenes"`
}

type PaginaEspacios struct {
	PaginaActual   int                `soap:"PaginaActual" json:"PaginaActual"`
	TamanoPagina   int                `soap:"TamanoPagina" json:"TamanoPagina"`
	TotalRegistros int                `soap:"TotalRegistros" json:"TotalRegistros"`
	Datos          []EspacioDetallado `soap:"Datos>DTO_WS_IntegracionDetalleEspacio" json:"Datos"`
}

// BusquedaServicios needs at least one filter besides paging.
type BusquedaServicios struct {
	Ubicacion    string `soap:"ubicacion,omitempty" json:"ubicacion,omitempty"`
	Hotel        string `soap:"hotel,omitempty" json:"hotel,omitempty"`
	FechaInicio  string `soap:"fechaInicio,omitempty" json:"fechaInicio,omitempty"`
	FechaFin     string `soap:"fechaFin,omitempty" json:"fechaFin,omitempty"`
	Puntuacion   *int   `soap:"puntuacion,omitempty" json:"puntuacion,omitempty"`
	Pagina       int    `soap:"pagina,default=1" json:"pagina"`
	TamanoPagina int    `soap:"tamanoPagina,default=10" json:"tamanoPagina"`
}

func (b BusquedaServicios) HasFilter() bool {
	return b.Ubicacion != "" || b.Hotel != "" || b.FechaInicio != "" || b.FechaFin != "" || b.Puntuacion != nil
}

type SolicitudPreReserva struct {
	Espacios         []int64 `soap:"listaEspacios>espacioId" json:"listaEspacios"`
	UsuarioId        *int64  `soap:"usuarioId,omitempty" json:"usuarioId,omitempty"`
	UsuarioExternoId *int64  `soap:"usuarioExternoId,omitempty" json:"usuarioExternoId,omitempty"`
	FechaInicio      string  `soap:"fechaInicio" json:"fechaInicio"`
	FechaFin         string  `soap:"fechaFin" json:"fechaFin"`
	Comentarios      string  `soap:"comentarios" json:"comentarios"`
}

type PreReserva struct {
	ReservaId        int64   `soap:"ReservaId" json:"ReservaId"`
	UsuarioExternoId int64   `soap:"UsuarioExternoId" json:"UsuarioExternoId"`
	TokenSesion      string  `soap:"TokenSesion" json:"TokenSesion"`
	Estado           string  `soap:"Estado" json:"Estado"`
	CostoTotal       float64 `soap:"CostoTotal" json:"CostoTotal"`
	DiasReservados   int     `soap:"DiasReservados" json:"DiasReservados"`
	MinutosRetencion int     `soap:"MinutosRetencion" json:"MinutosRetencion"`
	EsBloqueadaInt   int     `soap:"EsBloqueadaInt" json:"EsBloqueadaInt"`
	ExitoInt         int     `soap:"ExitoInt" json:"ExitoInt"`
	Mensaje          string  `soap:"Mensaje" json:"Mensaje"`
}

func (p PreReserva) Exito() bool { return p.ExitoInt == 1 }

type SolicitudCotizacion struct {
	EspacioId     int64    `soap:"espacioId" json:"espacioId"`
	CheckIn       string   `soap:"checkIn" json:"checkIn"`
	CheckOut      string   `soap:"checkOut" json:"checkOut"`
	CostoPorNoche *float64 `soap:"costoPorNoche,omitempty" json:"costoPorNoche,omitempty"`
}

type Cotizacion struct {
	EspacioId         int64    `soap:"EspacioId" json:"EspacioId"`
	HotelId           int64    `soap:"HotelId" json:"HotelId"`
	RoomType          string   `soap:"RoomType" json:"RoomType"`
	NumberBeds        int      `soap:"NumberBeds" json:"NumberBeds"`
	OccupancyAdultos  int      `soap:"OccupancyAdultos" json:"OccupancyAdultos"`
	OccupancyNinos    int      `soap:"OccupancyNinos" json:"OccupancyNinos"`
	Board             string   `soap:"Board" json:"Board"`
	Amenities         []string `soap:"Amenities>string" json:"Amenities"`
	BreakfastIncluded bool     `soap:"BreakfastIncluded" json:"BreakfastIncluded"`
	CheckIn           string   `soap:"CheckIn" json:"CheckIn"`
	CheckOut          string   `soap:"CheckOut" json:"CheckOut"`
	PricePerNight     float64  `soap:"PricePerNight" json:"PricePerNight"`
	TotalPrice        float64  `soap:"TotalPrice" json:"TotalPrice"`
	Currency          string   `soap:"Currency" json:"Currency"`
	PreBookingId      string   `soap:"PreBookingId" json:"PreBookingId"`
	BookingId         string   `soap:"BookingId" json:"BookingId"`
	Estado            string   `soap:"Estado" json:"Estado"`
	EsActivoInt       int      `soap:"EsActivoInt" json:"EsActivoInt"`
	ExitoInt          int      `soap:"ExitoInt" json:"ExitoInt"`
	ExpiraEn          string   `soap:"ExpiraEn" json:"ExpiraEn"`
	Mensaje           string   `soap:"Mensaje" json:"Mensaje"`
}

func (c Cotizacion) Exito() bool { return c.ExitoInt == 1 }

type SolicitudConfirmacion struct {
	ReservaId int64    `soap:"reservaId" json:"reservaId"`
	PagoId    *int64   `soap:"pagoId,omitempty" json:"pagoId,omitempty"`
	DatosPago string   `soap:"datosPago" json:"datosPago"`
	Monto     *float64 `soap:"monto,omitempty" json:"monto,omitempty"`
}

type Confirmacion struct {
	ReservaId      int64   `soap:"ReservaId" json:"ReservaId"`
	PagoId         int64   `soap:"PagoId" json:"PagoId"`
	Monto          float64 `soap:"Monto" json:"Monto"`
	ReferenciaPago string  `soap:"ReferenciaPago" json:"ReferenciaPago"`
	Estado         string  `soap:"Estado" json:"Estado"`
	TotalPrice     float64 `soap:"TotalPrice" json:"TotalPrice"`
	Currency       string  `soap:"Currency" json:"Currency"`
	EsActivoInt    int     `soap:"EsActivoInt" json:"EsActivoInt"`
	ExitoInt       int     `soap:"ExitoInt" json:"ExitoInt"`
	Mensaje        string  `soap:"Mensaje" json:"Mensaje"`
	ExpiraEn       string  `soap:"ExpiraEn" json:"ExpiraEn"`
	BookingId      string  `soap:"BookingId" json:"BookingId"`
}

func (c Confirmacion) Exito() bool { return c.ExitoInt == 1 }

type Cancelacion struct {
	ReservaId        int64  `soap:"ReservaId" json:"ReservaId"`
	Estado           string `soap:"Estado" json:"Estado"`
	ExitoInt         int    `soap:"ExitoInt" json:"ExitoInt"`
	Mensaje          string `soap:"Mensaje" json:"Mensaje"`
	FechaCancelacion string `soap:"FechaCancelacion" json:"FechaCancelacion"`
}

func (c Cancelacion) Exito() bool { return c.ExitoInt == 1 }
