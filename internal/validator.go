package internal

import "github.com/go-playground/validator/v10"

// Validator is shared by every configuration struct of this module.
var Validator = validator.New(validator.WithRequiredStructEnabled())
