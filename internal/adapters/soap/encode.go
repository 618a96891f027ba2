package soap

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// TimeLayout is the timestamp format the services accept and return.
const TimeLayout = "2006-01-02T15:04:05"

// Param is one named request element. Params keep their order on the wire.
type Param struct {
	Name  string
	Value any
}

type Params []Param

func P(name string, v any) Param { return Param{Name: name, Value: v} }

var (
	timeType   = reflect.TypeOf(time.Time{})
	paramsType = reflect.TypeOf(Params(nil))
)

type encoder struct {
	now func() time.Time
}

// encodeBody writes req as children of the operation element. req is a
// struct (fields in declaration order), a pointer to one, or Params.
func (e *encoder) encodeBody(op *etree.Element, req any) error {
	if req == nil {
		return nil
	}
	v := reflect.ValueOf(req)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Type() == paramsType {
		for _, p := range v.Interface().(Params) {
			if err := e.encodeField(op, reflect.ValueOf(p.Value), fieldSpec{name: p.Name}); err != nil {
				return err
			}
		}
		return nil
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("request must be a struct or Params, got %s", v.Kind())
	}
	for _, f := range fieldsOf(v.Type()) {
		if err := e.encodeField(op, v.Field(f.index), f.spec); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeField(parent *etree.Element, v reflect.Value, fs fieldSpec) error {
	if !v.IsValid() {
		return nil
	}
	explicit := false
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			// an unset optional value still goes out when it has a default
			if fs.hasDef && v.Kind() == reflect.Pointer {
				parent.CreateElement(fs.name).SetText(fs.def)
			}
			return nil
		}
		explicit = explicit || v.Kind() == reflect.Pointer
		v = v.Elem()
	}
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		if v.Len() == 0 && fs.omitEmpty {
			return nil
		}
		dst := parent
		if fs.wrapper != "" {
			dst = parent.CreateElement(fs.wrapper)
		}
		for i := 0; i < v.Len(); i++ {
			if err := e.encodeField(dst, v.Index(i), fieldSpec{name: fs.name}); err != nil {
				return err
			}
		}
		return nil
	}
	// A non-nil pointer is an explicit value, even when it points at zero.
	if fs.omitEmpty && !explicit && v.IsZero() && !fs.hasDef && !fs.now {
		return nil
	}
	return e.encodeValue(parent.CreateElement(fs.name), v, fs)
}

func (e *encoder) encodeValue(el *etree.Element, v reflect.Value, fs fieldSpec) error {
	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() && fs.now {
			t = e.now()
		}
		el.SetText(t.Format(TimeLayout))
		return nil
	}
	zeroDef := v.IsZero() && fs.hasDef
	switch v.Kind() {
	case reflect.String:
		s := v.String()
		switch {
		case s == "" && fs.now:
			s = e.now().Format(TimeLayout)
		case s == "" && fs.hasDef:
			s = fs.def
		}
		el.SetText(s)
	case reflect.Bool:
		if zeroDef {
			el.SetText(fs.def)
			break
		}
		el.SetText(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if zeroDef {
			el.SetText(fs.def)
			break
		}
		el.SetText(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if zeroDef {
			el.SetText(fs.def)
			break
		}
		el.SetText(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		if zeroDef {
			el.SetText(fs.def)
			break
		}
		el.SetText(strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits()))
	case reflect.Struct:
		for _, f := range fieldsOf(v.Type()) {
			if err := e.encodeField(el, v.Field(f.index), f.spec); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("element %s: unsupported kind %s", fs.name, v.Kind())
	}
	return nil
}
