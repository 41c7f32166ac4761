package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/serializer"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/samber/lo"
)

var projectCodeRe = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

var registerOnce sync.Once

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("projectcode", func(fl validator.FieldLevel) bool {
		return projectCodeRe.MatchString(fl.Field().String())
	})
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return "-"
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// trimmer is implemented by request bodies whose strings are trimmed
// before validation.
type trimmer interface {
	trim()
}

// defaultBodyLimit caps JSON bodies other than logo uploads.
const defaultBodyLimit int64 = 1 << 20

// bindJSON decodes the body into req, trims it and runs the binding tags.
func bindJSON(c *gin.Context, req any) error {
	return bindJSONLimit(c, req, defaultBodyLimit)
}

// bindJSONLimit is bindJSON for bodies of at most limit bytes.
func bindJSONLimit(c *gin.Context, req any, limit int64) error {
	registerOnce.Do(registerValidators)

	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation(fmt.Sprintf("request body exceeds %d bytes", limit), "body")
		}
		return apperr.Validation("unable to read request body", "body")
	}
	if err := json.Unmarshal(raw, req); err != nil {
		return apperr.Validation("invalid JSON body", "body")
	}
	if t, ok := req.(trimmer); ok {
		t.trim()
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		return validationError(err, "body")
	}
	return nil
}

func bindQuery(c *gin.Context, req any) error {
	registerOnce.Do(registerValidators)

	if err := c.ShouldBindQuery(req); err != nil {
		return validationError(err, "query")
	}
	return nil
}

func pathID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.Validation("value is not a valid uuid", "path", name)
	}
	return id, nil
}

func validationError(err error, loc string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validations([]apperr.FieldError{{Loc: []string{loc}, Msg: err.Error()}}, err)
	}
	fields := lo.Map(verrs, func(fe validator.FieldError, _ int) apperr.FieldError {
		return apperr.FieldError{Loc: []string{loc, fe.Field()}, Msg: fieldMessage(fe)}
	})
	return apperr.Validations(fields, nil)
}

func fieldMessage(fe validator.FieldError) string {
	numeric := fe.Kind() == reflect.Int || fe.Kind() == reflect.Int64
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		if numeric {
			return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "email":
		return "value is not a valid email address"
	case "projectcode":
		return fmt.Sprintf("string does not match regex %q", projectCodeRe.String())
	}
	return fmt.Sprintf("failed on the %s rule", fe.Tag())
}

func abort(c *gin.Context, err error) {
	c.JSON(serializer.AppErr(err))
}
