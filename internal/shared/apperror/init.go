package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init registers custom behaviour on Gin's built-in validator.
// Field names in validation errors come from the json tag, and the
// punchkind tag restricts a field to the four punch kinds.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("punchkind", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "in", "break", "endBreak", "out":
			return true
		default:
			return false
		}
	})
}
