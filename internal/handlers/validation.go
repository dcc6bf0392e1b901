package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/cosmonaut-api/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so error locations match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, []models.FieldError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, []models.FieldError{{
			Loc:  []string{"path", "id"},
			Msg:  "value is not a valid integer",
			Type: "type_error.integer",
		}}
	}
	return id, nil
}

// decodeCosmonautIn reads and validates a create/update body. A non-nil
// slice means the request must be rejected with 422.
func decodeCosmonautIn(r *http.Request) (models.CosmonautIn, []models.FieldError) {
	var in models.CosmonautIn
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&in); err != nil {
		return in, []models.FieldError{decodeError(err)}
	}
	// The body must hold exactly one JSON value.
	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return in, []models.FieldError{{Loc: []string{"body"}, Msg: "extra data after JSON value", Type: "value_error.jsondecode"}}
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return in, []models.FieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
		}
		out := make([]models.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, fieldError(fe))
		}
		return in, out
	}
	return in, nil
}

func decodeError(err error) models.FieldError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return models.FieldError{Loc: []string{"body"}, Msg: "field required", Type: "value_error.missing"}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return models.FieldError{Loc: []string{"body"}, Msg: "value is not a valid dict", Type: "type_error.dict"}
		}
		loc := []string{"body", typeErr.Field}
		switch typeErr.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return models.FieldError{Loc: loc, Msg: "value is not a valid integer", Type: "type_error.integer"}
		case reflect.String:
			return models.FieldError{Loc: loc, Msg: "str type expected", Type: "type_error.str"}
		default:
			return models.FieldError{Loc: loc, Msg: "invalid type", Type: "type_error"}
		}
	default:
		return models.FieldError{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode"}
	}
}

func fieldError(fe validator.FieldError) models.FieldError {
	loc := []string{"body", fe.Field()}
	switch fe.Tag() {
	case "required":
		return models.FieldError{Loc: loc, Msg: "field required", Type: "value_error.missing"}
	case "min":
		return models.FieldError{
			Loc:  loc,
			Msg:  "ensure this value has at least " + fe.Param() + " characters",
			Type: "value_error.any_str.min_length",
		}
	default:
		return models.FieldError{Loc: loc, Msg: fe.Error(), Type: "value_error"}
	}
}
