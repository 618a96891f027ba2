package app

import (
	"context"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

// TipoService serves one of the two taxonomy services. Active and inactive
// lists are cached under separate keys sharing a prefix.
type TipoService struct {
	r      remote
	l      *lookups
	prefix string
}

func (s *TipoService) active() string   { return s.prefix + ":activos" }
func (s *TipoService) inactive() string { return s.prefix + ":inactivos" }

func (s *TipoService) List(ctx context.Context) ([]domain.Tipo, error) {
	return cachedList(ctx, s.l, s.active(), func(ctx context.Context) ([]domain.Tipo, error) {
		return list[domain.Tipo](ctx, s.r, "seleccionarTipos", nil)
	})
}

func (s *TipoService) Inactive(ctx context.Context) ([]domain.Tipo, error) {
	return cachedList(ctx, s.l, s.inactive(), func(ctx context.Context) ([]domain.Tipo, error) {
		return list[domain.Tipo](ctx, s.r, "seleccionarInactivos", nil)
	})
}

func (s *TipoService) ByID(ctx context.Context, id int64) (domain.Tipo, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Tipo{}, err
	}
	return one[domain.Tipo](ctx, s.r, "seleccionarPorId", byID(id))
}

func (s *TipoService) ByNombre(ctx context.Context, nombre string) (domain.Tipo, error) {
	if err := domain.RequireText("nombre", nombre); err != nil {
		return domain.Tipo{}, err
	}
	return one[domain.Tipo](ctx, s.r, "seleccionarPorNombre", soap.Params{soap.P("nombre", nombre)})
}

func (s *TipoService) Create(ctx context.Context, t domain.Tipo) (int64, error) {
	if err := domain.RequireText("Nombre", t.Nombre); err != nil {
		return 0, err
	}
	t.Id, t.EsActivo = 0, domain.Flag(true)
	id, err := insert(ctx, s.r, "insertarTipo", soap.Params{soap.P("nuevoTipo", t)})
	if err == nil {
		s.l.invalidate(ctx, s.active())
	}
	return id, err
}

func (s *TipoService) Update(ctx context.Context, t domain.Tipo) error {
	if err := domain.RequireID("Id", t.Id); err != nil {
		return err
	}
	if err := domain.RequireText("Nombre", t.Nombre); err != nil {
		return err
	}
	t.UltimaFechaCambio = ""
	err := mutate(ctx, s.r, "actualizarTipo", soap.Params{soap.P("tipoEditado", t)})
	s.l.invalidate(ctx, s.active(), s.inactive())
	return err
}

func (s *TipoService) Delete(ctx context.Context, id int64) error {
	return s.toggle(ctx, "eliminarTipo", id)
}

func (s *TipoService) Reactivate(ctx context.Context, id int64) error {
	return s.toggle(ctx, "reactivarTipo", id)
}

func (s *TipoService) toggle(ctx context.Context, name string, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	err := mutate(ctx, s.r, name, byID(id))
	s.l.invalidate(ctx, s.active(), s.inactive())
	return err
}
