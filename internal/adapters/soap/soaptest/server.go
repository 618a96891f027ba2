// Package soaptest runs an in-process SOAP service for tests. It answers
// every .asmx path, routing on the service name and the operation element
// found in the request Body.
package soaptest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
)

const (
	ns11 = "http://schemas.xmlsoap.org/soap/envelope/"
	ns12 = "http://www.w3.org/2003/05/soap-envelope"
	tns  = "http://tempuri.org/"
)

// Call is one received request.
type Call struct {
	Service string
	Op      string
	Header  http.Header
	// Request is the operation element of the request Body.
	Request *etree.Element
}

// Param returns the text below the operation element at a slash separated
// path of local names, e.g. "nuevoHotel/Nombre". Missing elements read "".
func (c Call) Param(path string) string {
	if el := c.Find(path); el != nil {
		return el.Text()
	}
	return ""
}

// Find walks the operation element by local names.
func (c Call) Find(path string) *etree.Element {
	el := c.Request
	for _, name := range strings.Split(path, "/") {
		if el == nil {
			return nil
		}
		var next *etree.Element
		for _, ch := range el.ChildElements() {
			if ch.Tag == name {
				next = ch
				break
			}
		}
		el = next
	}
	return el
}

type reply struct {
	status int
	result string
	fault  string
	raw    string
}

type Server struct {
	*httptest.Server

	mu      sync.Mutex
	replies map[string]reply
	calls   []Call
}

func NewServer(t testing.TB) *Server {
	s := &Server{replies: map[string]reply{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Endpoint returns the URL of a service hosted by s.
func (s *Server) Endpoint(service string) string {
	return s.URL + "/" + service + ".asmx"
}

// Result answers op with <opResult>inner</opResult>. An empty inner
// answers an empty Result element.
func (s *Server) Result(service, op, inner string) {
	s.set(service, op, reply{status: http.StatusOK, result: "<" + op + "Result>" + inner + "</" + op + "Result>"})
}

// NoResult answers op with an empty Response element.
func (s *Server) NoResult(service, op string) {
	s.set(service, op, reply{status: http.StatusOK})
}

func (s *Server) Fault(service, op, reason string) {
	s.set(service, op, reply{status: http.StatusOK, fault: reason})
}

// Status answers op with a bare HTTP status and body.
func (s *Server) Status(service, op string, code int, body string) {
	s.set(service, op, reply{status: code, raw: body})
}

func (s *Server) set(service, op string, r reply) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[service+"/"+op] = r
}

// Calls returns the requests received for op, oldest first.
func (s *Server) Calls(service, op string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Call
	for _, c := range s.calls {
		if c.Service == service && c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	service := strings.TrimSuffix(path.Base(r.URL.Path), ".asmx")
	b, _ := io.ReadAll(r.Body)
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil || doc.Root() == nil {
		http.Error(w, "bad envelope", http.StatusBadRequest)
		return
	}
	envNS := doc.Root().NamespaceURI()
	var opEl *etree.Element
	for _, el := range doc.Root().ChildElements() {
		if el.Tag == "Body" && len(el.ChildElements()) > 0 {
			opEl = el.ChildElements()[0]
		}
	}
	if opEl == nil {
		http.Error(w, "no operation", http.StatusBadRequest)
		return
	}
	op := opEl.Tag

	s.mu.Lock()
	s.calls = append(s.calls, Call{Service: service, Op: op, Header: r.Header.Clone(), Request: opEl})
	rp, ok := s.replies[service+"/"+op]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "no reply configured for "+service+"/"+op, http.StatusInternalServerError)
		return
	}
	if rp.status != http.StatusOK {
		w.WriteHeader(rp.status)
		_, _ = io.WriteString(w, rp.raw)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	if envNS == ns12 {
		w.Header().Set("Content-Type", "application/soap+xml; charset=utf-8")
	}
	var inner string
	if rp.fault != "" {
		inner = fault(envNS, rp.fault)
	} else {
		inner = fmt.Sprintf(`<%sResponse xmlns="%s">%s</%sResponse>`, op, tns, rp.result, op)
	}
	fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?><s:Envelope xmlns:s="%s"><s:Body>%s</s:Body></s:Envelope>`, envNS, inner)
}

func fault(envNS, reason string) string {
	if envNS == ns12 {
		return `<s:Fault><s:Code><s:Value>s:Receiver</s:Value></s:Code><s:Reason><s:Text xml:lang="en">` +
			reason + `</s:Text></s:Reason></s:Fault>`
	}
	return `<s:Fault><faultcode>s:Server</faultcode><faultstring>` + reason + `</faultstring></s:Fault>`
}
