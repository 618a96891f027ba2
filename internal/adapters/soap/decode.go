package soap

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// decoder maps a result subtree onto Go values. Leaves are matched by local
// name; absent or empty text leaves the default in place. Text that cannot
// be coerced also falls back to the default and is recorded as an Issue.
type decoder struct {
	issues []Issue
}

func child(el *etree.Element, name string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

func children(el *etree.Element, name string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

// itemsAt walks a ">" separated path below res and returns the repeated
// elements named by its last segment, in document order.
func itemsAt(res *etree.Element, path string) []*etree.Element {
	if path == "" {
		return res.ChildElements()
	}
	segs := strings.Split(path, ">")
	el := res
	for _, s := range segs[:len(segs)-1] {
		if el = child(el, s); el == nil {
			return nil
		}
	}
	return children(el, segs[len(segs)-1])
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, ">"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func (d *decoder) decodeResult(res *etree.Element, item string, out reflect.Value) {
	if out.Kind() == reflect.Slice && out.Type().Elem().Kind() != reflect.Uint8 {
		els := itemsAt(res, item)
		name := lastSegment(item)
		s := reflect.MakeSlice(out.Type(), 0, len(els))
		for _, el := range els {
			ev := reflect.New(out.Type().Elem()).Elem()
			d.decodeValue(el, ev, fieldSpec{name: name}, name)
			s = reflect.Append(s, ev)
		}
		out.Set(s)
		return
	}
	d.decodeValue(res, out, fieldSpec{name: res.Tag}, res.Tag)
}

func (d *decoder) decodeValue(el *etree.Element, v reflect.Value, fs fieldSpec, path string) {
	if v.Kind() == reflect.Pointer {
		p := reflect.New(v.Type().Elem())
		d.decodeValue(el, p.Elem(), fs, path)
		v.Set(p)
		return
	}
	if v.Kind() == reflect.Struct && v.Type() != timeType {
		for _, f := range fieldsOf(v.Type()) {
			d.decodeField(el, v.Field(f.index), f.spec, path+"/"+f.spec.name)
		}
		return
	}
	d.coerce(el.Text(), v, fs, path)
}

func (d *decoder) decodeField(parent *etree.Element, v reflect.Value, fs fieldSpec, path string) {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() != reflect.Uint8 {
		container := parent
		if fs.wrapper != "" {
			container = child(parent, fs.wrapper)
		}
		els := children(container, fs.name)
		s := reflect.MakeSlice(v.Type(), 0, len(els))
		for _, el := range els {
			ev := reflect.New(v.Type().Elem()).Elem()
			d.decodeValue(el, ev, fieldSpec{name: fs.name}, path)
			s = reflect.Append(s, ev)
		}
		v.Set(s)
		return
	}
	c := child(parent, fs.name)
	if c == nil {
		switch {
		case v.Kind() == reflect.Pointer && fs.hasDef:
			p := reflect.New(v.Type().Elem())
			d.setDefault(p.Elem(), fs)
			v.Set(p)
		case v.Kind() != reflect.Pointer && v.Kind() != reflect.Struct:
			d.setDefault(v, fs)
		}
		return
	}
	d.decodeValue(c, v, fs, path)
}

func (d *decoder) coerce(raw string, v reflect.Value, fs fieldSpec, path string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		d.setDefault(v, fs)
		return
	}
	if !setText(v, raw, text) {
		d.issues = append(d.issues, Issue{Field: path, Text: text, Kind: kindName(v)})
		d.setDefault(v, fs)
	}
}

func (d *decoder) setDefault(v reflect.Value, fs fieldSpec) {
	v.SetZero()
	if fs.hasDef {
		setText(v, fs.def, strings.TrimSpace(fs.def))
	}
}

// setText parses text into v and reports whether it was valid for v's kind.
// Integer fields accept decimal text such as "3.0" and truncate it.
func setText(v reflect.Value, raw, text string) bool {
	if v.Type() == timeType {
		for _, layout := range []string{TimeLayout, time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
			if t, err := time.Parse(layout, text); err == nil {
				v.Set(reflect.ValueOf(t))
				return true
			}
		}
		return false
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		v.SetBool(strings.EqualFold(text, "true"))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			f, ferr := strconv.ParseFloat(text, 64)
			if ferr != nil || math.IsNaN(f) || math.Abs(f) > 9.2e18 {
				return false
			}
			n = int64(f)
		}
		if v.OverflowInt(n) {
			return false
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil || v.OverflowUint(n) {
			return false
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(text, v.Type().Bits())
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
		v.SetFloat(f)
	default:
		return false
	}
	return true
}

func kindName(v reflect.Value) string {
	if v.Type() == timeType {
		return "timestamp"
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	}
	return v.Kind().String()
}
