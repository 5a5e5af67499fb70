package handlers

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// requestValid reports whether every required field of the request struct is
// filled out.
func requestValid(req interface{}) bool {
	return validate.Struct(req) == nil
}
