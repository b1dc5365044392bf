package dto

import (
	"html"
	"reflect"
	"strings"

	"payee-treasury/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("eth_address", validateEthAddress)
		_ = v.RegisterValidation("amount", validateAmount)
	}
}

// validateEthAddress accepts a 0x-prefixed 20-byte hex address other than zero.
func validateEthAddress(fl validator.FieldLevel) bool {
	_, err := domain.ParseAddress(fl.Field().String())
	return err == nil
}

// validateAmount accepts a base-10 integer that fits in 256 bits. Zero passes
// here; the services reject it with their own error code.
func validateAmount(fl validator.FieldLevel) bool {
	_, err := domain.ParseAmount(fl.Field().String())
	return err == nil
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string and []string) of a struct pointer.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(sanitize(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			elem := f.Elem()
			if elem.Kind() == reflect.String {
				elem.SetString(sanitize(elem.String()))
			}
		case reflect.Slice:
			if f.Type().Elem().Kind() != reflect.String {
				continue
			}
			for j := 0; j < f.Len(); j++ {
				f.Index(j).SetString(sanitize(f.Index(j).String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
