package validation

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ErrorCode is a stable wire token describing a single failed check. The
// values are part of the API contract and must not change.
type ErrorCode string

const (
	CodeMissing               ErrorCode = "missing"
	CodeInvalidCardNumber     ErrorCode = "invalid_card_number"
	CodeInvalidCvv            ErrorCode = "invalid_cvv"
	CodeExpiryDateInThePast   ErrorCode = "expirydate_in_the_past"
	CodeIncorrectFormat       ErrorCode = "incorrect_format"
	CodeAmountTooLow          ErrorCode = "amount_too_low"
	CodeAmountTooHigh         ErrorCode = "amount_too_high"
	CodeCurrencyNotSupported  ErrorCode = "currency_not_supported"
	CodeAtLeastFourCharacters ErrorCode = "must_be_at_least_four_characters"
	CodeNameAlreadyExists     ErrorCode = "name_already_exists"
	CodeInvalidUsernameOrPass ErrorCode = "invalid_username_or_password"
)

type fieldError struct {
	Field string
	Code  ErrorCode
}

// Outcome aggregates per-field validation failures in check order. At most one
// error is kept per field: the first failing check wins and later checks on
// the same field are ignored. A nil *Outcome is the success sentinel.
type Outcome struct {
	errors []fieldError
}

// Add records code for field unless the field already failed an earlier check.
func (o *Outcome) Add(field string, code ErrorCode) {
	for _, e := range o.errors {
		if e.Field == field {
			return
		}
	}
	o.errors = append(o.errors, fieldError{Field: field, Code: code})
}

// Empty reports whether no check failed.
func (o *Outcome) Empty() bool {
	return o == nil || len(o.errors) == 0
}

// result returns the success sentinel when nothing failed.
func (o *Outcome) result() *Outcome {
	if o.Empty() {
		return nil
	}
	return o
}

// MarshalJSON serializes the outcome as a JSON object whose keys appear in
// check order, e.g. {"CardNumber":{"ErrorCode":"missing"}}. Maps cannot be
// used here because their encoding order is not insertion order.
func (o *Outcome) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o.errors {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(`:{"ErrorCode":`)
		code, err := json.Marshal(string(e.Code))
		if err != nil {
			return nil, err
		}
		buf.Write(code)
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SingleOutcome builds an outcome holding exactly one field error. Used for
// failures detected after model validation, like duplicate usernames.
func SingleOutcome(field string, code ErrorCode) *Outcome {
	o := &Outcome{}
	o.Add(field, code)
	return o
}

// WriteTeapot writes the outcome as the body of a 418 response. 418 is the
// unified validation-failure status of this API and is part of the contract.
func WriteTeapot(w http.ResponseWriter, o *Outcome) {
	body, err := json.Marshal(o)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTeapot)
	w.Write(body)
}
