package soap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"reflect"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"cuenca_gateway/internal/adapters/observability"
)

const (
	DefaultTimeout = 30 * time.Second

	maxBody      = 16 << 20
	maxErrorBody = 64 << 10
)

// Client invokes operations of one SOAP endpoint. It holds no per-call
// state and is safe for concurrent use.
type Client struct {
	endpoint string
	service  string
	ns       string
	version  Version
	timeout  time.Duration
	hc       *http.Client
	rl       *rate.Limiter
	log      zerolog.Logger
	now      func() time.Time
	strict   bool
}

type Option func(*Client)

func WithVersion(v Version) Option { return func(c *Client) { c.version = v } }

func WithNamespace(ns string) Option { return func(c *Client) { c.ns = ns } }

func WithTimeout(d time.Duration) Option { return func(c *Client) { c.timeout = d } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// WithStrict turns coercion fallbacks into a *DecodeError.
func WithStrict(strict bool) Option { return func(c *Client) { c.strict = strict } }

// WithService sets the metrics label. Defaults to the endpoint's file name.
func WithService(name string) Option { return func(c *Client) { c.service = name } }

// WithRateLimit caps outbound calls per second. Zero means unlimited.
func WithRateLimit(rps int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.rl = rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}

func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		service:  serviceName(endpoint),
		ns:       DefaultNamespace,
		version:  V11,
		timeout:  DefaultTimeout,
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: c.timeout}
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

func serviceName(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "soap"
	}
	return strings.TrimSuffix(path.Base(u.Path), ".asmx")
}

// Call invokes op with req as the operation body and decodes {op}Result
// into out. out may be a pointer to a struct, a slice, or a scalar, or nil
// for operations whose only success signal is the {op}Response element.
//
// A missing {op}Result yields an empty slice for list outputs and
// ErrNoResult otherwise.
func (c *Client) Call(ctx context.Context, op Operation, req, out any) error {
	start := time.Now()
	status, err := c.call(ctx, op, req, out)
	dur := time.Since(start)
	observability.ObserveExternal(c.service, op.Name, status, dur)

	switch {
	case err == nil:
		c.log.Debug().Str("service", c.service).Str("op", op.Name).Dur("duration", dur).Msg("soap call ok")
	case errors.Is(err, ErrNoResult):
		c.log.Debug().Str("service", c.service).Str("op", op.Name).Dur("duration", dur).Msg("soap call returned no result")
	default:
		c.log.Warn().Err(err).Str("service", c.service).Str("op", op.Name).
			Int("status", status).Str("kind", observability.LabelErr(err)).Dur("duration", dur).
			Msg("soap call failed")
	}
	return err
}

func (c *Client) call(ctx context.Context, op Operation, req, out any) (int, error) {
	v := op.Version
	if v == 0 {
		v = c.version
	}
	action := op.Action
	if action == "" {
		action = c.ns + op.Name
	}

	enc := &encoder{now: c.now}
	payload, err := enc.buildEnvelope(v, c.ns, op.Name, req)
	if err != nil {
		return 0, fmt.Errorf("soap %s: encode request: %w", op.Name, err)
	}

	if c.rl != nil {
		if err := c.rl.Wait(ctx); err != nil {
			return 0, &TransportError{Op: op.Name, Err: err}
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, &TransportError{Op: op.Name, Err: err}
	}
	httpReq.Header.Set("Content-Type", v.contentType(action))
	if v == V11 {
		httpReq.Header.Set("SOAPAction", `"`+action+`"`)
	}
	httpReq.Header.Set("User-Agent", "cuenca-gateway/1.0")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return 0, &TransportError{Op: op.Name, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, &StatusError{Op: op.Name, Code: resp.StatusCode, Body: string(b)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return resp.StatusCode, &TransportError{Op: op.Name, Err: err}
	}
	return resp.StatusCode, c.decode(op, body, out)
}

func (c *Client) decode(op Operation, body []byte, out any) error {
	respEl, err := c.locateResponse(op.Name, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("soap %s: out must be a non-nil pointer", op.Name)
	}
	target := rv.Elem()

	res := child(respEl, op.Name+"Result")
	if res == nil {
		if target.Kind() == reflect.Slice {
			target.Set(reflect.MakeSlice(target.Type(), 0, 0))
			return nil
		}
		return fmt.Errorf("soap %s: %w", op.Name, ErrNoResult)
	}
	// <opResult/> on a single-value read is a miss, not a zero record
	if target.Kind() != reflect.Slice && len(res.ChildElements()) == 0 && strings.TrimSpace(res.Text()) == "" {
		return fmt.Errorf("soap %s: %w", op.Name, ErrNoResult)
	}

	d := &decoder{}
	d.decodeResult(res, op.Item, target)
	if len(d.issues) == 0 {
		return nil
	}
	if c.strict {
		return &DecodeError{Op: op.Name, Issues: d.issues}
	}
	for _, is := range d.issues {
		c.log.Warn().Str("service", c.service).Str("op", op.Name).
			Str("field", is.Field).Str("text", is.Text).Str("want", is.Kind).
			Msg("soap field coerced to default")
	}
	return nil
}

// locateResponse checks the envelope structure and returns the {op}Response
// element. Faults surface as *FaultError, structural problems as *ParseError.
func (c *Client) locateResponse(op string, body []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, &ParseError{Op: op, Msg: "invalid XML", Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &ParseError{Op: op, Msg: "empty document"}
	}
	if ns := root.NamespaceURI(); root.Tag != "Envelope" || (ns != NS11 && ns != NS12) {
		return nil, &ParseError{Op: op, Msg: fmt.Sprintf("unexpected root element %q", root.FullTag())}
	}
	bodyEl := child(root, "Body")
	if bodyEl == nil {
		return nil, &ParseError{Op: op, Msg: "envelope has no Body"}
	}
	if f := child(bodyEl, "Fault"); f != nil {
		return nil, faultFrom(op, f)
	}
	for _, el := range children(bodyEl, op+"Response") {
		if ns := el.NamespaceURI(); ns == "" || ns == c.ns {
			return el, nil
		}
	}
	return nil, &ParseError{Op: op, Msg: "missing " + op + "Response"}
}

// faultFrom reads both SOAP 1.1 (faultcode/faultstring) and
// SOAP 1.2 (Code/Value, Reason/Text) fault layouts.
func faultFrom(op string, f *etree.Element) *FaultError {
	fe := &FaultError{Op: op}
	if c := child(f, "faultcode"); c != nil {
		fe.Code = strings.TrimSpace(c.Text())
	}
	if s := child(f, "faultstring"); s != nil {
		fe.Reason = strings.TrimSpace(s.Text())
	}
	if c := child(child(f, "Code"), "Value"); c != nil {
		fe.Code = strings.TrimSpace(c.Text())
	}
	if r := child(child(f, "Reason"), "Text"); r != nil {
		fe.Reason = strings.TrimSpace(r.Text())
	}
	return fe
}

// List calls a list-returning operation. The result is never nil on success.
func List[T any](ctx context.Context, c *Client, op Operation, req any) ([]T, error) {
	var out []T
	if err := c.Call(ctx, op, req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// One calls an operation returning a single record or scalar.
func One[T any](ctx context.Context, c *Client, op Operation, req any) (T, error) {
	var out T
	err := c.Call(ctx, op, req, &out)
	return out, err
}

// Exec calls an operation whose result, if any, is ignored.
func Exec(ctx context.Context, c *Client, op Operation, req any) error {
	return c.Call(ctx, op, req, nil)
}
