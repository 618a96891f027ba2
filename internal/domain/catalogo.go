package domain

type Politica struct {
	Id                  int64  `soap:"Id" json:"Id"`
	DescripcionPolitica string `soap:"DescripcionPolitica" json:"DescripcionPolitica"`
	FechaRegistro       string `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio   string `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo            *bool  `soap:"EsActivo,default=true" json:"EsActivo"`
}

// Tipo is a lookup taxonomy entry: service types and meal types share it.
type Tipo struct {
	Id                int64  `soap:"Id" json:"Id"`
	Nombre            string `soap:"Nombre" json:"Nombre"`
	FechaRegistro     string `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio string `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo          *bool  `soap:"EsActivo,default=true" json:"EsActivo"`
}

type Amenidad struct {
	Id                int64  `soap:"Id" json:"Id"`
	Nombre            string `soap:"Nombre" json:"Nombre"`
	FechaRegistro     string `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio string `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo          *bool  `soap:"EsActivo,default=true" json:"EsActivo"`
}
