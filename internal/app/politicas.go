package app

import (
	"context"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

type PoliticaService struct {
	r remote
	l *lookups
}

func (s *PoliticaService) List(ctx context.Context) ([]domain.Politica, error) {
	return cachedList(ctx, s.l, keyPoliticas, func(ctx context.Context) ([]domain.Politica, error) {
		return list[domain.Politica](ctx, s.r, "seleccionarPoliticas", nil)
	})
}

func (s *PoliticaService) ByID(ctx context.Context, id int64) (domain.Politica, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Politica{}, err
	}
	return one[domain.Politica](ctx, s.r, "seleccionarPoliticaPorId", byID(id))
}

func (s *PoliticaService) Search(ctx context.Context, texto string) ([]domain.Politica, error) {
	if err := domain.RequireText("texto", texto); err != nil {
		return nil, err
	}
	return list[domain.Politica](ctx, s.r, "buscarPoliticasPorTexto", soap.Params{soap.P("texto", texto)})
}

// Exists reports whether a policy with exactly this description is stored.
func (s *PoliticaService) Exists(ctx context.Context, descripcion string) (bool, error) {
	if err := domain.RequireText("descripcion", descripcion); err != nil {
		return false, err
	}
	return one[bool](ctx, s.r, "existePolitica", soap.Params{soap.P("descripcion", descripcion)})
}

func (s *PoliticaService) Create(ctx context.Context, p domain.Politica) (int64, error) {
	if err := domain.RequireText("DescripcionPolitica", p.DescripcionPolitica); err != nil {
		return 0, err
	}
	p.Id, p.EsActivo = 0, domain.Flag(true)
	id, err := insert(ctx, s.r, "insertarPolitica", soap.Params{soap.P("nuevaPolitica", p)})
	if err == nil {
		s.l.invalidate(ctx, keyPoliticas)
	}
	return id, err
}

func (s *PoliticaService) Update(ctx context.Context, p domain.Politica) error {
	if err := domain.RequireID("Id", p.Id); err != nil {
		return err
	}
	if err := domain.RequireText("DescripcionPolitica", p.DescripcionPolitica); err != nil {
		return err
	}
	p.UltimaFechaCambio = ""
	err := mutate(ctx, s.r, "actualizarPolitica", soap.Params{soap.P("politicaEditada", p)})
	s.l.invalidate(ctx, keyPoliticas)
	return err
}

func (s *PoliticaService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	err := mutate(ctx, s.r, "eliminarPolitica", byID(id))
	s.l.invalidate(ctx, keyPoliticas)
	return err
}
