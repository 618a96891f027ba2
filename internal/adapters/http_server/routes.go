package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cuenca_gateway/internal/app"
	"cuenca_gateway/internal/domain"
)

type Handlers struct {
	G       *app.Gateway
	Details *app.DetailService
	// Sweeper is optional; without it the admin routes answer 404.
	Sweeper *app.Sweeper
}

func (s *Server) MountHandlers(h *Handlers) {
	if h.Details == nil {
		h.Details = app.NewDetailService(h.G, 0)
	}
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.Route("/v1", func(r chi.Router) {
		r.Route("/hoteles", h.hoteles)
		r.Route("/espacios", h.espacios)
		r.Route("/relaciones", h.relaciones)
		r.Route("/reservas", h.reservas)
		r.Route("/pagos", h.pagos)
		r.Route("/politicas", h.politicas)
		r.Route("/tipos-servicio", tipos(h.G.TiposServicio))
		r.Route("/tipos-alimentacion", tipos(h.G.TiposAlimentacion))
		r.Route("/usuarios", h.usuarios)
		r.Route("/amenidades", h.amenidades)
		r.Route("/integracion", h.integracion)
		if h.Sweeper != nil {
			r.Route("/admin/liberaciones", h.liberaciones)
		}
	})
}

func (h *Handlers) hoteles(r chi.Router) {
	s := h.G.Hoteles
	r.Get("/", listOf(s.List))
	r.Get("/buscar", func(w http.ResponseWriter, req *http.Request) {
		out, err := s.SearchByName(req.Context(), req.URL.Query().Get("nombre"))
		answer(w, req, out, err)
	})
	r.Get("/{id}", byIDOf(s.ByID))
	r.Get("/{id}/espacios", byIDOf(s.Spaces))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Hotel, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
}

func (h *Handlers) espacios(r chi.Router) {
	s, rel := h.G.Espacios, h.G.Relaciones
	r.Get("/", listOf(s.List))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Espacio, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
	r.Get("/{id}/relaciones", byIDOf(rel.ByEspacio))
	r.Get("/{id}/disponible", rangeOf(rel.Available))
	r.Get("/{id}/costo", rangeOf(rel.Cost))
}

// rangeOf serves /{id}/... queries taking fechaInicio and fechaFin.
func rangeOf[T any](f func(context.Context, int64, string, string) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		q := r.URL.Query()
		out, err := f(r.Context(), id, q.Get("fechaInicio"), q.Get("fechaFin"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, out)
	}
}

type puntuacion struct {
	Puntuacion *int `json:"puntuacion"`
}

func (h *Handlers) relaciones(r chi.Router) {
	s := h.G.Relaciones
	r.Get("/", listOf(s.List))
	r.Get("/expiradas", listOf(s.Expired))
	r.Get("/{id}", byIDOf(s.ByID))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Relacion, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
	r.Post("/{id}/desbloquear", actionOf(s.Unlock))
	r.Put("/{id}/puntuacion", func(w http.ResponseWriter, req *http.Request) {
		id, err := pathID(req, "id")
		if err != nil {
			writeError(w, req, err)
			return
		}
		var in puntuacion
		if err := decodeBody(w, req, &in); err != nil {
			writeError(w, req, err)
			return
		}
		if in.Puntuacion == nil {
			writeError(w, req, domain.Invalid("puntuacion", "is required"))
			return
		}
		if err := s.Rate(req.Context(), id, *in.Puntuacion); err != nil {
			writeError(w, req, err)
			return
		}
		writeData(w, req, http.StatusOK, nil)
	})
}

type cambioEstado struct {
	Estado string `json:"estado"`
}

type totales struct {
	Reserva       domain.Reserva `json:"reserva"`
	PorcentajeIVA float64        `json:"porcentajeIVA"`
}

type bloqueo struct {
	Minutos int `json:"minutos"`
}

func (h *Handlers) reservas(r chi.Router) {
	s := h.G.Reservas
	r.Get("/", listOf(s.List))
	r.Get("/expiradas", listOf(s.Expired))
	r.Get("/bloqueadas", listOf(s.Locked))
	r.Get("/{id}", byIDOf(s.ByID))
	r.Get("/{id}/relaciones", byIDOf(h.G.Relaciones.ByReserva))
	r.Get("/{id}/pagos", byIDOf(h.G.Pagos.ByReserva))
	r.Get("/{id}/pagado", byIDOf(h.G.Pagos.TotalPaid))
	r.Get("/{id}/detalle", byIDOf(h.Details.ReservationDetail))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Reserva, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
	r.Put("/{id}/estado", withBody(func(ctx context.Context, id int64, in cambioEstado) error {
		return s.ChangeState(ctx, id, in.Estado)
	}))
	r.Post("/{id}/totales", withBody(func(ctx context.Context, id int64, in totales) error {
		in.Reserva.Id = id
		return s.ComputeTotals(ctx, in.Reserva, in.PorcentajeIVA)
	}))
	r.Post("/{id}/bloqueo", withBody(func(ctx context.Context, id int64, in bloqueo) error {
		return s.Lock(ctx, id, in.Minutos)
	}))
}

func (h *Handlers) pagos(r chi.Router) {
	s := h.G.Pagos
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if estado := req.URL.Query().Get("estado"); estado != "" {
			out, err := s.ByEstado(req.Context(), estado)
			answer(w, req, out, err)
			return
		}
		out, err := s.List(req.Context())
		answer(w, req, out, err)
	})
	r.Get("/usuario", func(w http.ResponseWriter, req *http.Request) {
		uid, err := queryInt64(req, "usuarioId")
		if err != nil {
			writeError(w, req, err)
			return
		}
		ext, err := queryInt64(req, "usuarioExternoId")
		if err != nil {
			writeError(w, req, err)
			return
		}
		out, err := s.ByUsuario(req.Context(), uid, ext)
		answer(w, req, out, err)
	})
	r.Get("/referencia/{ref}", func(w http.ResponseWriter, req *http.Request) {
		out, err := s.ByReferencia(req.Context(), chi.URLParam(req, "ref"))
		answer(w, req, out, err)
	})
	r.Get("/{id}", byIDOf(s.ByID))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Pago, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
}

func (h *Handlers) politicas(r chi.Router) {
	s := h.G.Politicas
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		if texto := req.URL.Query().Get("texto"); texto != "" {
			out, err := s.Search(req.Context(), texto)
			answer(w, req, out, err)
			return
		}
		out, err := s.List(req.Context())
		answer(w, req, out, err)
	})
	r.Get("/existe", func(w http.ResponseWriter, req *http.Request) {
		out, err := s.Exists(req.Context(), req.URL.Query().Get("descripcion"))
		answer(w, req, out, err)
	})
	r.Get("/{id}", byIDOf(s.ByID))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Politica, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
}

func tipos(s *app.TipoService) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", listOf(s.List))
		r.Get("/inactivos", listOf(s.Inactive))
		r.Get("/nombre/{nombre}", func(w http.ResponseWriter, req *http.Request) {
			out, err := s.ByNombre(req.Context(), chi.URLParam(req, "nombre"))
			answer(w, req, out, err)
		})
		r.Get("/{id}", byIDOf(s.ByID))
		r.Post("/", createOf(s.Create))
		r.Put("/{id}", updateOf(s.Update, func(v *domain.Tipo, id int64) { v.Id = id }))
		r.Delete("/{id}", actionOf(s.Delete))
		r.Post("/{id}/reactivar", actionOf(s.Reactivate))
	}
}

type credenciales struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) usuarios(r chi.Router) {
	s := h.G.Usuarios
	r.Get("/", listOf(s.List))
	r.Get("/inactivos", listOf(s.Inactive))
	r.Get("/{id}", byIDOf(s.ByID))
	r.Get("/{id}/reservas", byIDOf(h.G.Reservas.ByUsuario))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Usuario, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
	r.Post("/{id}/reactivar", actionOf(s.Reactivate))
	r.Post("/sesion", func(w http.ResponseWriter, req *http.Request) {
		var in credenciales
		if err := decodeBody(w, req, &in); err != nil {
			writeError(w, req, err)
			return
		}
		out, err := s.Login(req.Context(), in.Email, in.Password)
		answer(w, req, out, err)
	})
}

func (h *Handlers) amenidades(r chi.Router) {
	s := h.G.Amenidades
	r.Get("/", listOf(s.List))
	r.Get("/{id}", byIDOf(s.ByID))
	r.Post("/", createOf(s.Create))
	r.Put("/{id}", updateOf(s.Update, func(v *domain.Amenidad, id int64) { v.Id = id }))
	r.Delete("/{id}", actionOf(s.Delete))
}

type cancelacion struct {
	Motivo string `json:"motivo"`
}

func (h *Handlers) integracion(r chi.Router) {
	s := h.G.Integracion
	r.Get("/espacios", func(w http.ResponseWriter, req *http.Request) {
		pagina, err := queryInt(req, "pagina")
		if err != nil {
			writeError(w, req, err)
			return
		}
		tamano, err := queryInt(req, "tamanoPagina")
		if err != nil {
			writeError(w, req, err)
			return
		}
		out, err := s.Page(req.Context(), pagina, tamano)
		answer(w, req, out, err)
	})
	r.Get("/buscar", func(w http.ResponseWriter, req *http.Request) {
		q, err := busqueda(req)
		if err != nil {
			writeError(w, req, err)
			return
		}
		out, err := s.Search(req.Context(), q)
		answer(w, req, out, err)
	})
	r.Get("/espacios/{id}", byIDOf(s.Detail))
	r.Get("/espacios/{id}/disponibilidad", rangeOf(s.Availability))
	r.Get("/hoteles", listOf(s.Hotels))
	r.Get("/ubicaciones", listOf(s.Locations))
	r.Post("/prereservas", postOf(s.PreBook))
	r.Post("/cotizaciones", postOf(s.Quote))
	r.Post("/confirmaciones", postOf(s.Confirm))
	r.Post("/reservas/{id}/cancelacion", func(w http.ResponseWriter, req *http.Request) {
		id, err := pathID(req, "id")
		if err != nil {
			writeError(w, req, err)
			return
		}
		var in cancelacion
		if req.ContentLength != 0 {
			if err := decodeBody(w, req, &in); err != nil {
				writeError(w, req, err)
				return
			}
		}
		out, err := s.Cancel(req.Context(), id, in.Motivo)
		answer(w, req, out, err)
	})
}

// busqueda reads the search filters from the query string.
func busqueda(req *http.Request) (domain.BusquedaServicios, error) {
	q := req.URL.Query()
	b := domain.BusquedaServicios{
		Ubicacion:   q.Get("ubicacion"),
		Hotel:       q.Get("hotel"),
		FechaInicio: q.Get("fechaInicio"),
		FechaFin:    q.Get("fechaFin"),
	}
	var err error
	if b.Pagina, err = queryInt(req, "pagina"); err != nil {
		return b, err
	}
	if b.TamanoPagina, err = queryInt(req, "tamanoPagina"); err != nil {
		return b, err
	}
	if q.Get("puntuacion") != "" {
		p, err := queryInt(req, "puntuacion")
		if err != nil {
			return b, err
		}
		b.Puntuacion = &p
	}
	return b, nil
}

// postOf serves a request/response operation with a JSON body.
func postOf[In, Out any](f func(context.Context, In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		out, err := f(r.Context(), in)
		answer(w, r, out, err)
	}
}

func (h *Handlers) liberaciones(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		limit, err := queryInt(req, "limit")
		if err != nil {
			writeError(w, req, err)
			return
		}
		out, err := h.Sweeper.Recent(req.Context(), limit)
		answer(w, req, out, err)
	})
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		out, err := h.Sweeper.Run(req.Context())
		answer(w, req, out, err)
	})
}
