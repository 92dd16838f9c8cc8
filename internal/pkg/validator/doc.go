// Package validator wraps go-playground/validator with English translations
// and the custom rules the service relies on for request validation.
package validator
