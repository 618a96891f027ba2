package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cuenca_gateway/internal/adapters/soap"
	"cuenca_gateway/internal/domain"
)

const maxErrorDetail = 512

// envelope is the body of every JSON answer.
type envelope struct {
	Exito        bool   `json:"exito"`
	Datos        any    `json:"datos,omitempty"`
	Error        string `json:"error,omitempty"`
	Tipo         string `json:"tipo,omitempty"`
	EstadoRemoto int    `json:"estado_remoto,omitempty"`
	Detalle      string `json:"detalle,omitempty"`
}

// Error kinds reported in the "tipo" field.
const (
	kindValidation  = "validacion"
	kindCredentials = "credenciales"
	kindRejected    = "rechazado"
	kindNotFound    = "no_encontrado"
	kindRemote      = "error_remoto"
	kindFault       = "fault"
	kindBadReply    = "respuesta_invalida"
	kindTimeout     = "tiempo_agotado"
	kindTransport   = "transporte"
	kindInternal    = "interno"
)

// classify maps an error to its HTTP status and envelope.
func classify(err error) (int, envelope) {
	env := envelope{Error: err.Error()}
	var (
		se *soap.StatusError
		fe *soap.FaultError
		pe *soap.ParseError
		de *soap.DecodeError
		te *soap.TransportError
	)
	switch {
	case domain.IsValidation(err):
		env.Tipo = kindValidation
		return http.StatusBadRequest, env
	case errors.Is(err, domain.ErrInvalidCredentials):
		env.Tipo = kindCredentials
		return http.StatusUnauthorized, env
	case errors.Is(err, domain.ErrRejected):
		env.Tipo = kindRejected
		return http.StatusConflict, env
	case soap.IsNoResult(err):
		env.Tipo = kindNotFound
		return http.StatusNotFound, env
	case errors.As(err, &se):
		env.Tipo, env.EstadoRemoto = kindRemote, se.Code
		env.Detalle = clip(se.Body)
		return http.StatusBadGateway, env
	case errors.As(err, &fe):
		env.Tipo, env.Detalle = kindFault, fe.Code
		return http.StatusBadGateway, env
	case errors.As(err, &pe), errors.As(err, &de):
		env.Tipo = kindBadReply
		return http.StatusBadGateway, env
	case errors.As(err, &te) && te.Timeout(), errors.Is(err, context.DeadlineExceeded):
		env.Tipo = kindTimeout
		return http.StatusGatewayTimeout, env
	case errors.As(err, &te):
		env.Tipo = kindTransport
		return http.StatusServiceUnavailable, env
	}
	env.Tipo = kindInternal
	return http.StatusInternalServerError, env
}

func clip(s string) string {
	if len(s) <= maxErrorDetail {
		return s
	}
	n := maxErrorDetail
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := classify(err)
	if status >= http.StatusInternalServerError {
		log.Warn().Err(err).Str("path", r.URL.Path).Str("kind", env.Tipo).Msg("request failed")
	}
	writeJSON(w, status, env)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body, nil
}

// writeData answers {"exito":true,"datos":v}. GET answers carry a weak
// ETag and short-circuit to 304 when the client already has this version.
func writeData(w http.ResponseWriter, r *http.Request, status int, v any) {
	if r.Method != http.MethodGet {
		writeJSON(w, status, envelope{Exito: true, Datos: v})
		return
	}
	etag, body, err := calcETagAndBody(envelope{Exito: true, Datos: v})
	if err != nil {
		writeError(w, r, fmt.Errorf("encode response: %w", err))
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("write body failed")
	}
}

// ---- request helpers ----

func pathID(r *http.Request, name string) (int64, error) {
	v := chi.URLParam(r, name)
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.Invalid(name, "must be an integer")
	}
	return n, nil
}

func queryInt64(r *http.Request, name string) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, domain.Invalid(name, "must be an integer")
	}
	return n, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalid("", "request body is required")
		}
		return domain.Invalid("", "malformed JSON: "+err.Error())
	}
	return nil
}

// ---- generic handlers ----

func listOf[T any](f func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := f(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, out)
	}
}

func byIDOf[T any](f func(context.Context, int64) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		out, err := f(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, out)
	}
}

type created struct {
	Id int64 `json:"id"`
}

func createOf[T any](f func(context.Context, T) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		id, err := f(r.Context(), in)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusCreated, created{Id: id})
	}
}

// updateOf takes the record id from the path, overriding the body.
func updateOf[T any](f func(context.Context, T) error, setID func(*T, int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		var in T
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		setID(&in, id)
		if err := f(r.Context(), in); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, nil)
	}
}

func actionOf(f func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := f(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, nil)
	}
}

// withBody serves /{id}/... actions taking a JSON body.
func withBody[T any](f func(context.Context, int64, T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, r, err)
			return
		}
		var in T
		if err := decodeBody(w, r, &in); err != nil {
			writeError(w, r, err)
			return
		}
		if err := f(r.Context(), id, in); err != nil {
			writeError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, nil)
	}
}

// answer writes out or the error.
func answer[T any](w http.ResponseWriter, r *http.Request, out T, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeData(w, r, http.StatusOK, out)
}
