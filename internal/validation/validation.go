// Package validation checks client payloads before any state is touched.
//
// Rules are plain data (see Rule and Schema). A Schema walks its rules in
// order, checks presence and type itself, and hands the remaining tag-style
// constraints to go-playground/validator. The first failing rule decides the
// message returned to the client; every failure is also reported as an
// errs.FieldError.
package validation
