package app

import (
	"context"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

type UsuarioService struct{ r remote }

// Password hashes never leave the gateway.
func scrub(us []domain.Usuario) []domain.Usuario {
	for i := range us {
		us[i].PasswordHash = ""
	}
	return us
}

func (s *UsuarioService) List(ctx context.Context) ([]domain.Usuario, error) {
	us, err := list[domain.Usuario](ctx, s.r, "seleccionarUsuarios", nil)
	return scrub(us), err
}

func (s *UsuarioService) Inactive(ctx context.Context) ([]domain.Usuario, error) {
	us, err := list[domain.Usuario](ctx, s.r, "seleccionarInactivos", nil)
	return scrub(us), err
}

func (s *UsuarioService) ByID(ctx context.Context, id int64) (domain.Usuario, error) {
	if err := domain.RequireID("id", id); err != nil {
		return domain.Usuario{}, err
	}
	u, err := one[domain.Usuario](ctx, s.r, "seleccionarPorId", byID(id))
	u.PasswordHash = ""
	return u, err
}

// Login checks credentials remotely. An empty answer means the pair did
// not match and surfaces as domain.ErrInvalidCredentials.
func (s *UsuarioService) Login(ctx context.Context, email, password string) (domain.Usuario, error) {
	if err := domain.RequireText("email", email); err != nil {
		return domain.Usuario{}, err
	}
	if err := domain.RequireText("password", password); err != nil {
		return domain.Usuario{}, err
	}
	u, err := one[domain.Usuario](ctx, s.r, "iniciarSesion",
		soap.Params{soap.P("email", email), soap.P("password", password)})
	if soap.IsNoResult(err) || (err == nil && u.Id <= 0) {
		return domain.Usuario{}, domain.ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, err
}

func validateUsuario(u domain.Usuario) error {
	if err := domain.RequireText("Nombre", u.Nombre); err != nil {
		return err
	}
	return domain.RequireText("Email", u.Email)
}

func (s *UsuarioService) Create(ctx context.Context, u domain.Usuario) (int64, error) {
	if err := validateUsuario(u); err != nil {
		return 0, err
	}
	if err := domain.RequireText("PasswordHash", u.PasswordHash); err != nil {
		return 0, err
	}
	u.Id, u.EsActivo = 0, domain.Flag(true)
	return insert(ctx, s.r, "insertarUsuario", soap.Params{soap.P("nuevoUsuario", u)})
}

func (s *UsuarioService) Update(ctx context.Context, u domain.Usuario) error {
	if err := domain.RequireID("Id", u.Id); err != nil {
		return err
	}
	if err := validateUsuario(u); err != nil {
		return err
	}
	u.UltimaFechaCambio = ""
	return mutate(ctx, s.r, "actualizarUsuario", soap.Params{soap.P("usuarioEditado", u)})
}

func (s *UsuarioService) Delete(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	return mutate(ctx, s.r, "eliminarUsuario", byID(id))
}

func (s *UsuarioService) Reactivate(ctx context.Context, id int64) error {
	if err := domain.RequireID("id", id); err != nil {
		return err
	}
	return mutate(ctx, s.r, "reactivarUsuario", byID(id))
}
