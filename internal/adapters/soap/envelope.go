package soap

import (
	"fmt"

	"github.com/beevik/etree"
)

type Version int

const (
	V11 Version = 11
	V12 Version = 12
)

const (
	NS11             = "http://schemas.xmlsoap.org/soap/envelope/"
	NS12             = "http://www.w3.org/2003/05/soap-envelope"
	DefaultNamespace = "http://tempuri.org/"

	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"
	nsXSD = "http://www.w3.org/2001/XMLSchema"
)

func (v Version) String() string {
	if v == V12 {
		return "1.2"
	}
	return "1.1"
}

func (v Version) envelopeNS() string {
	if v == V12 {
		return NS12
	}
	return NS11
}

func (v Version) prefix() string {
	if v == V12 {
		return "soap12"
	}
	return "soap"
}

func (v Version) contentType(action string) string {
	if v == V12 {
		return fmt.Sprintf(`application/soap+xml; charset=utf-8; action="%s"`, action)
	}
	return "text/xml; charset=utf-8"
}

// Operation is the static description of one remote method.
type Operation struct {
	Name string
	// Action defaults to namespace + Name.
	Action string
	// Version zero means the client's default.
	Version Version
	// Item names the repeated element of a list result. A ">" separated
	// path descends through wrappers, e.g. "Datos>DTO_WS_IntegracionDetalleEspacio".
	Item string
}

// buildEnvelope renders the request document. Text is escaped by the
// serializer, so caller strings never leak markup into the envelope.
func (e *encoder) buildEnvelope(v Version, ns, op string, req any) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	p := v.prefix()
	env := doc.CreateElement(p + ":Envelope")
	env.CreateAttr("xmlns:xsi", nsXSI)
	env.CreateAttr("xmlns:xsd", nsXSD)
	env.CreateAttr("xmlns:"+p, v.envelopeNS())

	body := env.CreateElement(p + ":Body")
	opEl := body.CreateElement(op)
	opEl.CreateAttr("xmlns", ns)
	if err := e.encodeBody(opEl, req); err != nil {
		return nil, err
	}
	return doc.WriteToBytes()
}
