package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validateMaxBytes unlike the max tag, which counts runes, limits the field length in bytes.
func validateMaxBytes(fl validator.FieldLevel) bool {
	maxBytes, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(str) <= maxBytes
}

// validateProviderID accepts payment gateway entity ids such as order_Ik9sJ2 for `provider_id=order`:
// the param prefix, an underscore and a non-empty alphanumeric tail.
func validateProviderID(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	tail, found := strings.CutPrefix(str, fl.Param()+"_")
	if !found || tail == "" {
		return false
	}
	for _, r := range tail {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validator registration: unexpected validator engine")
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	validations := map[string]validator.Func{
		"max_bytes":   validateMaxBytes,
		"provider_id": validateProviderID,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("validator registration %s: %w", tag, err)
		}
	}
	return nil
}
