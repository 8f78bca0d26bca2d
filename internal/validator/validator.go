// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("distribution_type", validateDistributionType)
		_ = v.RegisterValidation("acquisition_type", validateAcquisitionType)
		_ = v.RegisterValidation("scenario_status", validateScenarioStatus)
	}
}

func validateDistributionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "LINEAR", "S_CURVE", "HEAD_LOADED", "TAIL_LOADED", "MANUAL":
		return true
	}
	return false
}

func validateAcquisitionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "CASH", "BARTER":
		return true
	}
	return false
}

func validateScenarioStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "incomplete", "ready", "analyzed":
		return true
	}
	return false
}
