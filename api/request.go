package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-backend/errs"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// payload is a request body that knows how to describe its own validation failures.
type payload interface {
	validationMessage(fe validator.FieldError) string
}

// decodeJSON reads the request body into dst. An empty body leaves dst at its
// zero value so that validation reports the missing fields.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return errs.NewMaxBodySizeExceededError(maxBytesErr.Limit)
	}
	return errs.NewInvalidJSONError(err)
}

// validatePayload runs the struct's validate tags. Missing fields are
// reported before malformed ones.
func validatePayload(p payload) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	for _, candidate := range fieldErrs {
		if candidate.Tag() == "required" {
			fe = candidate
			break
		}
	}
	return errs.NewBadRequestErrorWithField(p.validationMessage(fe), fe.Field(), "")
}

// decodeAndValidate combines decodeJSON and validatePayload
func decodeAndValidate(r *http.Request, p payload) error {
	if err := decodeJSON(r, p); err != nil {
		return err
	}
	return validatePayload(p)
}

type signupRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name"`
}

func (signupRequest) validationMessage(fe validator.FieldError) string {
	if fe.Tag() == "min" {
		return "Password must be at least 6 characters"
	}
	return "Email and password are required"
}

type signinRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (signinRequest) validationMessage(validator.FieldError) string {
	return "Email and password are required"
}

type upsertProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func (upsertProfileRequest) validationMessage(validator.FieldError) string {
	return "Name and email are required"
}

type createProjectRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Work        string `json:"work"`
	ProfileID   string `json:"profileId" validate:"required"`
}

func (createProjectRequest) validationMessage(validator.FieldError) string {
	return "Title and profileId are required"
}

type githubProjectRequest struct {
	GithubURL string `json:"githubUrl" validate:"required"`
	ProfileID string `json:"profileId" validate:"required"`
}

func (githubProjectRequest) validationMessage(validator.FieldError) string {
	return "GitHub URL and profileId are required"
}
