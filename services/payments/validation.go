package payments

import (
	// Go Internal Packages
	"unicode/utf8"

	// Local Packages
	errors "pay-stream/errors"
	models "pay-stream/models"

	// External Packages
	"github.com/shopspring/decimal"
)

const (
	MaxDescriptionLength = 500

	DefaultPageLimit    = 20
	DefaultHistoryLimit = 10
	MaxPageLimit        = 100
)

// ValidateRequest checks every rule and reports all violations at once.
func ValidateRequest(req models.PaymentRequest, ceiling decimal.Decimal) error {
	ve := errors.ValidationErrs()

	switch {
	case req.IsMistyped("user_id"):
		ve.Add("user_id", "must be an integer")
	case req.UserID <= 0:
		ve.Add("user_id", "must be a positive integer")
	}

	switch {
	case req.IsMistyped("amount"):
		ve.Add("amount", "must be a number")
	case !req.Amount.IsPositive():
		ve.Add("amount", "must be a positive number")
	case !req.Amount.Equal(req.Amount.Round(2)):
		ve.Add("amount", "must have at most 2 decimal places")
	case req.Amount.GreaterThan(ceiling):
		ve.Add("amount", "cannot exceed "+ceiling.StringFixed(2))
	}

	switch {
	case req.IsMistyped("payment_method"):
		ve.Add("payment_method", "must be a string")
	case req.PaymentMethod == "":
		ve.Add("payment_method", "is required")
	case !req.PaymentMethod.Valid():
		ve.Add("payment_method", "must be one of: "+models.JoinPaymentMethods())
	}

	switch {
	case req.IsMistyped("description"):
		ve.Add("description", "must be a string")
	case utf8.RuneCountInString(req.Description) > MaxDescriptionLength:
		ve.Add("description", "cannot exceed 500 characters")
	}

	if err := ve.Err(); err != nil {
		return errors.ValidationFailedErr(err)
	}
	return nil
}

func validatePage(page, limit int) error {
	ve := errors.ValidationErrs()
	if page < 1 {
		ve.Add("page", "must be at least 1")
	}
	validateLimit(ve, limit)
	if err := ve.Err(); err != nil {
		return errors.InvalidParamsErr(err)
	}
	return nil
}

func validateLimit(ve *errors.ValidationErrors, limit int) {
	if limit < 1 || limit > MaxPageLimit {
		ve.Add("limit", "must be between 1 and 100")
	}
}
