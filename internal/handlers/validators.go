package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	symbolPattern       = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.]{0,9}$`)
	vendorHandlePattern = regexp.MustCompile(`^@[A-Za-z0-9][A-Za-z0-9_-]{1,31}$`)
	registerOnce        sync.Once
)

// RegisterValidators adds the custom binding tags used by the request DTOs:
// "symbol" (ticker, 1-10 chars, letter first) and "vendorhandle" (e.g. @acme).
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("symbol", func(fl validator.FieldLevel) bool {
			return symbolPattern.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("vendorhandle", func(fl validator.FieldLevel) bool {
			return vendorHandlePattern.MatchString(fl.Field().String())
		})
	})
}
