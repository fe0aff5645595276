package httptransport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	panRegex     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	ifscRegex    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	pincodeRegex = regexp.MustCompile(`^\d{6}$`)
)

type validationRule struct {
	tag string
	fn  validator.Func
}

func regexRule(tag string, re *regexp.Regexp) validationRule {
	return validationRule{tag: tag, fn: func(fl validator.FieldLevel) bool {
		val, ok := fl.Field().Interface().(string)
		return ok && re.MatchString(val)
	}}
}

func requestRules() []validationRule {
	return []validationRule{
		regexRule("pan", panRegex),
		regexRule("ifsc", ifscRegex),
		regexRule("pincode", pincodeRegex),
	}
}

// Validator wraps validator.Validate with the request rules and reports the
// first failing field by its json name.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	for _, r := range requestRules() {
		_ = v.RegisterValidation(r.tag, r.fn)
	}
	return &Validator{validate: v}
}

func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return errors.New(fieldMessage(verrs[0]))
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, e.Param())
	case "pan":
		return fmt.Sprintf("%s must be a valid PAN (e.g. ABCDE1234F)", field)
	case "ifsc":
		return fmt.Sprintf("%s must be a valid IFSC code", field)
	case "pincode":
		return fmt.Sprintf("%s must be 6 digits", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// decode reads a JSON body into dst and validates it. On failure it writes
// the 400 response and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
