package handlers

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/resumeready/backend/tools"
)

// RegisterValidators installs the custom binding rules on gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterResumeValidators(v)
}

// RegisterResumeValidators registers all resume-related custom validators
func RegisterResumeValidators(v *validator.Validate) error {
	return v.RegisterValidation("resumetext", ValidateResumeText)
}

// ValidateResumeText accepts resume text of at least MinResumeChars non-blank characters
func ValidateResumeText(fl validator.FieldLevel) bool {
	return len(strings.TrimSpace(fl.Field().String())) >= tools.MinResumeChars
}
