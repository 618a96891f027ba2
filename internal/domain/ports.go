package domain

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// HoldSource lists expired reservation-space holds and releases them.
type HoldSource interface {
	RelacionesExpiradas(ctx context.Context) ([]Relacion, error)
	DesbloquearRelacion(ctx context.Context, id int64) (bool, error)
}

// DetailSource feeds the reservation detail view.
type DetailSource interface {
	ReservaPorID(ctx context.Context, id int64) (Reserva, error)
	RelacionesPorReserva(ctx context.Context, reservaID int64) ([]Relacion, error)
	PagosPorReserva(ctx context.Context, reservaID int64) ([]Pago, error)
	EspacioDetalle(ctx context.Context, espacioID int64) (EspacioDetallado, error)
}

type SweepLog interface {
	Record(ctx context.Context, r SweepRecord) error
	ListRecent(ctx context.Context, limit int) ([]SweepRecord, error)
}

const (
	SweepReleased = "released"
	SweepRejected = "rejected"
	SweepFailed   = "failed"
)

type SweepRecord struct {
	RunID      string    `json:"runId"`
	RelacionID int64     `json:"relacionId"`
	ReservaID  int64     `json:"reservaId"`
	EspacioID  int64     `json:"espacioId"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReservaDetalle is a reservation with its booked spaces and payments.
type ReservaDetalle struct {
	Reserva  Reserva          `json:"Reserva"`
	Espacios []EspacioReserva `json:"Espacios"`
	Pagos    []Pago           `json:"Pagos"`
	Pagado   float64          `json:"Pagado"`
}

type EspacioReserva struct {
	Relacion Relacion          `json:"Relacion"`
	Detalle  *EspacioDetallado `json:"Detalle,omitempty"`
}
