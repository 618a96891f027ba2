package domain

const (
	EstadoPendiente  = "Pendiente"
	EstadoConfirmada = "Confirmada"
	EstadoCancelada  = "Cancelada"
)

type Usuario struct {
	Id                      int64  `soap:"Id" json:"Id"`
	Nombre                  string `soap:"Nombre" json:"Nombre"`
	Email                   string `soap:"Email" json:"Email"`
	PasswordHash            string `soap:"PasswordHash" json:"PasswordHash,omitempty"`
	Rol                     string `soap:"Rol" json:"Rol"`
	FechaRegistro           string `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio       string `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo                *bool  `soap:"EsActivo,default=true" json:"EsActivo"`
	UltimaFechainicioSesion string `soap:"UltimaFechainicioSesion,now" json:"UltimaFechainicioSesion"`
}

// Reserva is a booking. MinutosRetencion, ExpiraEn and TokenSesion
// describe its temporary hold; the remote service owns the expiry.
type Reserva struct {
	Id                int64   `soap:"Id" json:"Id"`
	UsuarioId         int64   `soap:"UsuarioId" json:"UsuarioId"`
	UsuarioExternoId  int64   `soap:"UsuarioExternoId" json:"UsuarioExternoId"`
	Estado            string  `soap:"Estado" json:"Estado"`
	Comentarios       string  `soap:"Comentarios" json:"Comentarios"`
	CostoSubtotal     float64 `soap:"CostoSubtotal" json:"CostoSubtotal"`
	CostoIVA          float64 `soap:"CostoIVA" json:"CostoIVA"`
	CostoFinal        float64 `soap:"CostoFinal" json:"CostoFinal"`
	MinutosRetencion  int     `soap:"MinutosRetencion" json:"MinutosRetencion"`
	ExpiraEn          int64   `soap:"ExpiraEn" json:"ExpiraEn"`
	EsBloqueada       bool    `soap:"EsBloqueada" json:"EsBloqueada"`
	TokenSesion       string  `soap:"TokenSesion" json:"TokenSesion"`
	FechaRegistro     string  `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio string  `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo          *bool   `soap:"EsActivo,default=true" json:"EsActivo"`

	// Always sent on writes, possibly zero-valued.
	UsuarioExterno Usuario `soap:"UsuarioExterno" json:"UsuarioExterno"`
	Usuarios       Usuario `soap:"Usuarios" json:"Usuarios"`
}

// Relacion is the RESXESP join: one space booked within one reservation.
type Relacion struct {
	Id                int64   `soap:"Id" json:"Id"`
	CostoCalculado    float64 `soap:"CostoCalculado" json:"CostoCalculado"`
	PuntuacionUsuario int     `soap:"PuntuacionUsuario" json:"PuntuacionUsuario"`
	FechaInicio       string  `soap:"FechaInicio" json:"FechaInicio"`
	FechaFin          string  `soap:"FechaFin" json:"FechaFin"`
	ReservaId         int64   `soap:"ReservaId" json:"ReservaId"`
	EspacioId         int64   `soap:"EspacioId" json:"EspacioId"`
	MinutosRetencion  int     `soap:"MinutosRetencion" json:"MinutosRetencion"`
	ExpiraEn          int64   `soap:"ExpiraEn" json:"ExpiraEn"`
	EsBloqueada       bool    `soap:"EsBloqueada" json:"EsBloqueada"`
	TokenSesion       string  `soap:"TokenSesion" json:"TokenSesion"`
	FechaRegistro     string  `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio string  `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo          *bool   `soap:"EsActivo,default=true" json:"EsActivo"`

	Espacios *Espacio `soap:"Espacios,omitempty" json:"Espacios,omitempty"`
	Reservas *Reserva `soap:"Reservas,omitempty" json:"Reservas,omitempty"`
}
