// Package forms validates what users submit before it reaches the backend.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode"

	apperrors "covoit/pkg/errors"
	"covoit/pkg/logger"
	"covoit/pkg/model"
	"covoit/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

var (
	plateRegex      = regexp.MustCompile(`^[A-Z]{2}-?\d{3}-?[A-Z]{2}$`)
	postalCodeRegex = regexp.MustCompile(`^\d{5}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// AppError converts the field errors into a validation AppError keyed by field.
func (v ValidationErrors) AppError() *apperrors.AppError {
	details := make(map[string]any, len(v))
	for _, err := range v {
		details[err.Field] = err.Message
	}
	return apperrors.Validation("The submitted form is invalid", details)
}

type Validator struct {
	validate *validator.Validate
	logger   *logger.Logger
	now      func() time.Time
}

func NewValidator(log *logger.Logger) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("plate_fr", validatePlate); err != nil {
		log.Fatal("Failed to register 'plate_fr' validator", "error", err)
	}
	if err := v.RegisterValidation("postal_code_fr", validatePostalCode); err != nil {
		log.Fatal("Failed to register 'postal_code_fr' validator", "error", err)
	}

	log.Debug("Form validator initialized successfully")

	return &Validator{
		validate: v,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for "not in the past" checks.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

func validatePlate(fl validator.FieldLevel) bool {
	return plateRegex.MatchString(NormalizePlate(fl.Field().String()))
}

func validatePostalCode(fl validator.FieldLevel) bool {
	return postalCodeRegex.MatchString(sanitizer.NormalizeNumber(fl.Field().String()))
}

// NormalizePlate uppercases a registration plate and drops spaces.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

func (v *Validator) Credentials(c *model.Credentials) error {
	c.Email = strings.TrimSpace(c.Email)
	return v.check(c)
}

// Register validates a sign-up form, rewriting the phone number in E.164.
func (v *Validator) Register(in *model.RegisterInput) error {
	in.Email = strings.TrimSpace(in.Email)
	if err := v.normalizePhone(&in.Phone); err != nil {
		return err
	}
	return v.check(in)
}

func (v *Validator) ProfileUpdate(in *model.ProfileUpdate) error {
	if err := v.normalizePhone(&in.Phone); err != nil {
		return err
	}
	return v.check(in)
}

func (v *Validator) StatusUpdate(in *model.StatusUpdate) error {
	return v.check(in)
}

func (v *Validator) Vehicle(in *model.Vehicle) error {
	in.Plate = NormalizePlate(in.Plate)
	return v.check(in)
}

// Listing validates a ride offer. Departure must lie in the future.
func (v *Validator) Listing(in *model.ListingInput) error {
	in.Origin.PostalCode = sanitizer.NormalizeNumber(in.Origin.PostalCode)
	in.Destination.PostalCode = sanitizer.NormalizeNumber(in.Destination.PostalCode)

	if err := v.check(in); err != nil {
		return err
	}
	if !in.DepartureTime.After(v.now()) {
		return ValidationErrors{{
			Field:   "dateDepart",
			Message: "dateDepart cannot be in the past",
		}}.AppError()
	}
	return nil
}

// ListingEdit additionally refuses edits once a passenger has booked.
func (v *Validator) ListingEdit(current model.Listing, in *model.ListingInput) error {
	if !current.Editable() {
		return apperrors.Conflict("This listing already has passengers and can no longer be modified")
	}
	return v.Listing(in)
}

// Reservation validates a company vehicle booking window.
func (v *Validator) Reservation(in *model.VehicleReservationInput) error {
	if err := v.check(in); err != nil {
		return err
	}
	if in.Start.Before(v.now()) {
		return ValidationErrors{{
			Field:   "dateDebut",
			Message: "dateDebut cannot be in the past",
		}}.AppError()
	}
	return nil
}

func (v *Validator) normalizePhone(phone *string) error {
	if strings.TrimSpace(*phone) == "" {
		*phone = ""
		return nil
	}
	normalized := sanitizer.NormalizePhone(*phone)
	if normalized == "" {
		return ValidationErrors{{
			Field:   "telephone",
			Message: "telephone is not a valid phone number",
		}}.AppError()
	}
	*phone = normalized
	return nil
}

func (v *Validator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs).AppError()
		}
		return apperrors.Internal("validation could not run", err)
	}
	return nil
}

func (v *Validator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "e164":
			message = fmt.Sprintf("%s must be in E.164 format (e.g., +33612345678)", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("%s must be later than the start date", err.Field())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", err.Field())
		case "plate_fr":
			message = fmt.Sprintf("%s must look like AB-123-CD", err.Field())
		case "postal_code_fr":
			message = fmt.Sprintf("%s must be a 5 digit postal code", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   fieldPath(err),
			Message: message,
		})
	}

	return validationErrors
}

// fieldPath keeps only the JSON names of the namespace, dropping the
// top-level struct and embedded structs: "ListingInput.adresseDepart.ville"
// becomes "adresseDepart.ville", "RegisterInput.Identity.prenom" becomes "prenom".
func fieldPath(err validator.FieldError) string {
	var parts []string
	for _, part := range strings.Split(err.Namespace(), ".") {
		if part == "" || unicode.IsUpper(rune(part[0])) {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return err.Field()
	}
	return strings.Join(parts, ".")
}
