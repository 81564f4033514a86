package handlers

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

var genders = map[string]struct{}{
	"male":   {},
	"female": {},
	"other":  {},
}

// RegisterValidators adds the request rules used by binding tags to gin's validator.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			_, ok := genders[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
			return ok
		})
	})
}
