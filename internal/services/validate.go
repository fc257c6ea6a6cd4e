package services

import "github.com/go-playground/validator/v10"

// Shared validator for draft form types. Cross-field rules that the tag
// language cannot express live in the drafts' own Validate methods.
var validate = validator.New()
