package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var segmentPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,31}$`)

// RegisterValidators installs the custom binding tags used by the request DTOs.
// It must run before any route that binds a DTO carrying those tags.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("segment", validateSegment)
}

// validateSegment accepts business line labels such as WEAVING or DYEING_2.
func validateSegment(fl validator.FieldLevel) bool {
	return segmentPattern.MatchString(fl.Field().String())
}
