package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/shop-api/internal/domain"
)

// ErrInvalidJSON is returned when a request body is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON body")

// Global validator instance for reuse. Errors are reported under JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := jsonName(field)
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes a JSON object body into the struct pointed to by v.
//
// It returns ErrInvalidJSON when the body is not a single JSON object, and a
// *domain.ValidationError when keys are unknown or values have the wrong
// type. Nested objects are checked the same way, with errors reported
// under paths like "products[0].id". A null value leaves the field
// untouched, as if it were absent.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return ErrInvalidJSON
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrInvalidJSON
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("DecodeJSON needs a pointer to a struct, got %T", v)
	}

	verr := &domain.ValidationError{}
	decodeObject(raw, rv.Elem(), "", verr)
	return verr.OrNil()
}

func decodeObject(raw map[string]json.RawMessage, rv reflect.Value, prefix string, verr *domain.ValidationError) {
	rt := rv.Type()
	fields := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if name := jsonName(rt.Field(i)); name != "" && name != "-" {
			fields[name] = i
		}
	}

	for key, value := range raw {
		path := prefix + key
		i, ok := fields[key]
		if !ok {
			verr.Add(path, domain.MsgUnknownField)
			continue
		}
		if isNull(value) {
			continue
		}

		field := rv.Field(i)
		if !decodeValue(value, field, path, verr) {
			field.SetZero()
			verr.Add(path, typeMessage(field.Type(), value))
		}
	}
}

// decodeValue reports false when value has the wrong shape for field.
// Objects and lists of objects recurse so their keys are checked too.
func decodeValue(value json.RawMessage, field reflect.Value, path string, verr *domain.ValidationError) bool {
	t := field.Type()
	switch {
	case isObjectType(t):
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(value, &raw); err != nil || raw == nil {
			return false
		}
		decodeObject(raw, field, path+".", verr)
		return true

	case t.Kind() == reflect.Slice && isObjectType(t.Elem()):
		var items []json.RawMessage
		if err := json.Unmarshal(value, &items); err != nil || items == nil {
			return false
		}
		list := reflect.MakeSlice(t, len(items), len(items))
		for i, item := range items {
			if isNull(item) {
				continue
			}
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if !decodeValue(item, list.Index(i), itemPath, verr) {
				verr.Add(itemPath, typeMessage(t.Elem(), item))
			}
		}
		field.Set(list)
		return true

	default:
		return json.Unmarshal(value, field.Addr().Interface()) == nil
	}
}

func isObjectType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t != timeType
}

func isNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

// ValidateRequest validates the given struct using its validate tags and
// returns a *domain.ValidationError with client-facing messages.
func ValidateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe), tagMessage(fe))
	}
	return verr
}

// fieldPath strips the struct name from the namespace: "products[0].id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgMissingField
	case "max":
		if n, err := strconv.Atoi(fe.Param()); err == nil {
			return domain.MsgLongerThan(n)
		}
	}
	return domain.MsgInvalidValue
}

var timeType = reflect.TypeOf(time.Time{})

// typeMessage names the type a field expected, from the Go type it decodes into.
func typeMessage(t reflect.Type, value json.RawMessage) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == timeType {
		return domain.MsgNotDateTime
	}

	switch t.Kind() {
	case reflect.String:
		return domain.MsgNotString
	case reflect.Float32, reflect.Float64:
		return domain.MsgNotNumber
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return domain.MsgNotInteger
	case reflect.Slice, reflect.Array:
		if trimmed := bytes.TrimSpace(value); len(trimmed) == 0 || trimmed[0] != '[' {
			return domain.MsgNotList
		}
	}
	return domain.MsgInvalidValue
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
