// Package validator hooks custom rules into gin's binding engine.
package validator

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/domain"
)

// RegisterBindings adds the "isodate" rule used by booking and availability
// request structs. Call once at startup, before the router handles traffic.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validator: unexpected binding engine")
	}
	return v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(domain.DateLayout, fl.Field().String())
		return err == nil
	})
}
