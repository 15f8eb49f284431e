package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phoneNumberPattern = regexp.MustCompile(`^(\+?91)?[6-9]\d{9}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs the json tag name func and the custom rules on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	err := v.RegisterValidation("phonenumber", phoneNumberValidator)
	if err != nil {
		log.Fatal("register phonenumber validator failed")
	}
}

// IsPhoneNumber reports whether s is an Indian mobile number, optionally
// prefixed with 91 or +91. Spaces and dashes are ignored.
func IsPhoneNumber(s string) bool {
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	return phoneNumberPattern.MatchString(s)
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return IsPhoneNumber(fl.Field().String())
}
