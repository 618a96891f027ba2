package soap

import (
	"reflect"
	"strings"
)

// fieldSpec is the parsed form of a `soap:"Name,opt,..."` struct tag.
//
//	Name         element name; "a>b" wraps repeated <b> elements in <a>
//	omitempty    skip the element when the value is zero
//	now          encode an empty string as the client's current time
//	default=X    use literal X for a zero value or nil pointer (encode) or an
//	             absent leaf (decode)
type fieldSpec struct {
	name      string
	wrapper   string
	omitEmpty bool
	now       bool
	def       string
	hasDef    bool
}

type field struct {
	index int
	spec  fieldSpec
}

func parseTag(sf reflect.StructField) (fieldSpec, bool) {
	if !sf.IsExported() {
		return fieldSpec{}, false
	}
	tag, ok := sf.Tag.Lookup("soap")
	if tag == "-" {
		return fieldSpec{}, false
	}
	if !ok || tag == "" {
		return fieldSpec{name: sf.Name}, true
	}
	parts := strings.Split(tag, ",")
	var fs fieldSpec
	fs.name = parts[0]
	if fs.name == "" {
		fs.name = sf.Name
	}
	if w, item, found := strings.Cut(fs.name, ">"); found {
		fs.wrapper, fs.name = w, item
	}
	for _, p := range parts[1:] {
		switch {
		case p == "omitempty":
			fs.omitEmpty = true
		case p == "now":
			fs.now = true
		case strings.HasPrefix(p, "default="):
			fs.def = strings.TrimPrefix(p, "default=")
			fs.hasDef = true
		}
	}
	return fs, true
}

func fieldsOf(t reflect.Type) []field {
	out := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if fs, ok := parseTag(t.Field(i)); ok {
			out = append(out, field{index: i, spec: fs})
		}
	}
	return out
}
