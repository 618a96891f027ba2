package domain

type Pago struct {
	Id                    int64   `soap:"Id" json:"Id"`
	ReservaId             int64   `soap:"ReservaId" json:"ReservaId"`
	Monto                 float64 `soap:"Monto" json:"Monto"`
	NumeroDeCedula        string  `soap:"NumeroDeCedula" json:"NumeroDeCedula"`
	Estado                string  `soap:"Estado" json:"Estado"`
	TransaccionReferencia string  `soap:"TransaccionReferencia" json:"TransaccionReferencia"`
	Fuente                string  `soap:"Fuente" json:"Fuente"`
	FechaPago             string  `soap:"FechaPago,now" json:"FechaPago"`
	FechaRegistro         string  `soap:"FechaRegistro,now" json:"FechaRegistro"`
	UltimaFechaCambio     string  `soap:"UltimaFechaCambio,now" json:"UltimaFechaCambio"`
	EsActivo              *bool   `soap:"EsActivo,default=true" json:"EsActivo"`

	Reservas *Reserva `soap:"Reservas,omitempty" json:"Reservas,omitempty"`
}

// PagoDetalle joins a payment with its reservation and the paying user.
type PagoDetalle struct {
	PagoId                int64   `soap:"PagoId" json:"PagoId"`
	ReservaId             int64   `soap:"ReservaId" json:"ReservaId"`
	Monto                 float64 `soap:"Monto" json:"Monto"`
	NumeroDeCedula        string  `soap:"NumeroDeCedula" json:"NumeroDeCedula"`
	Estado                string  `soap:"Estado" json:"Estado"`
	TransaccionReferencia string  `soap:"TransaccionReferencia" json:"TransaccionReferencia"`
	Fuente                string  `soap:"Fuente" json:"Fuente"`
	FechaPago             string  `soap:"FechaPago" json:"FechaPago"`
	FechaRegistro         string  `soap:"FechaRegistro" json:"FechaRegistro"`
	CostoFinal            float64 `soap:"CostoFinal" json:"CostoFinal"`
	EstadoReserva         string  `soap:"EstadoReserva" json:"EstadoReserva"`
	FechaReserva          string  `soap:"FechaReserva" json:"FechaReserva"`
	NombreUsuario         string  `soap:"NombreUsuario" json:"NombreUsuario"`
	EmailUsuario          string  `soap:"EmailUsuario" json:"EmailUsuario"`
	NombreUsuarioExterno  string  `soap:"NombreUsuarioExterno" json:"NombreUsuarioExterno"`
	EmailUsuarioExterno   string  `soap:"EmailUsuarioExterno" json:"EmailUsuarioExterno"`
}
