// Package forms binds submitted HTML form values, validates them and keeps
// field errors and widget hints for re-rendering.
package forms

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"quillblog/app/models"

	"github.com/go-playground/validator/v10"
)

// NonFieldErrors is the Errors key for problems not tied to one field.
const NonFieldErrors = "__all__"

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Widget describes how a field is rendered.
type Widget struct {
	Type  string
	Class string
}

// Errors maps form field names to a message.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Merge copies field errors reported by a later stage, such as a service.
func (e Errors) Merge(fields map[string]string) {
	for field, message := range fields {
		e.Add(field, message)
	}
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// check validates form against its struct tags and records failures.
func check(form interface{}, errs Errors) {
	err := validate.Struct(form)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), models.Message(fe))
	}
}

func parse(r *http.Request) {
	// A malformed body leaves the form empty, which then fails validation.
	_ = r.ParseForm()
}

func value(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}
