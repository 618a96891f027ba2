package domain

// Records mirror the remote wire shapes. The soap tags name the XML
// elements; the json tags keep the same names for the browser front end.
// EsActivo is optional on writes: left unset it goes out as true, so a
// partial update never deactivates a record.

// Flag returns a pointer to b for the optional EsActivo fields.
func Flag(b bool) *bool { return &b }

// Active reads an optional EsActivo flag; unset means active.
func Active(p *bool) bool { return p == nil || *p }

type Hotel struct {
	Id                int64  `soap:"Id" json:"Id"`
	Nombre            string `soap:"Nombre" json:"Nombre"`
	FechaRegistro     string `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio string `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo          *bool  `soap:"EsActivo,default=true" json:"EsActivo"`
}

// Espacio is a bookable unit of a hotel. ExpiraEn is a timestamp here,
// unlike the integer hold counters on Reserva and Relacion.
type Espacio struct {
	Id                  int64   `soap:"Id" json:"Id"`
	HotelId             int64   `soap:"HotelId" json:"HotelId"`
	TipoServicioId      int64   `soap:"TipoServicioId" json:"TipoServicioId"`
	TipoAlimentacionId  int64   `soap:"TipoAlimentacionId" json:"TipoAlimentacionId"`
	Nombre              string  `soap:"Nombre" json:"Nombre"`
	Moneda              string  `soap:"Moneda,default=USD" json:"Moneda"`
	CostoDiario         float64 `soap:"CostoDiario" json:"CostoDiario"`
	CapacidadAdultos    int     `soap:"CapacidadAdultos,default=1" json:"CapacidadAdultos"`
	CapacidadNinios     int     `soap:"CapacidadNinios" json:"CapacidadNinios"`
	Habitaciones        int     `soap:"Habitaciones,default=1" json:"Habitaciones"`
	Parqueaderos        int     `soap:"Parqueaderos" json:"Parqueaderos"`
	DimensionesDelLugar string  `soap:"DimensionesDelLugar" json:"DimensionesDelLugar"`
	DescripcionDelLugar string  `soap:"DescripcionDelLugar" json:"DescripcionDelLugar"`
	Puntuacion          int     `soap:"Puntuacion" json:"Puntuacion"`
	Ubicacion           string  `soap:"Ubicacion" json:"Ubicacion"`
	MinutosRetencion    int     `soap:"MinutosRetencion,default=60" json:"MinutosRetencion"`
	ExpiraEn            string  `soap:"ExpiraEn,now" json:"ExpiraEn"`
	EsBloqueada         bool    `soap:"EsBloqueada" json:"EsBloqueada"`
	FechaRegistro       string  `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio   string  `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo            *bool   `soap:"EsActivo,default=true" json:"EsActivo"`

	// Only filled by obtenerEspaciosDelHotel.
	Hotel            *Hotel `soap:"Hotel,omitempty" json:"Hotel,omitempty"`
	TipoServicio     *Tipo  `soap:"TipoServicio,omitempty" json:"TipoServicio,omitempty"`
	TipoAlimentacion *Tipo  `soap:"TipoAlimentacion,omitempty" json:"TipoAlimentacion,omitempty"`
}
