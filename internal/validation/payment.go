package validation

import (
	"strings"
	"time"

	"github.com/sebuszqo/PaymentGateway/internal/cards"
)

// expiryDateLayouts lists the date formats accepted for card expiry dates.
var expiryDateLayouts = []string{
	"2006-01-02",
	"01/2006",
	"01/06",
	"2006-01",
}

// PaymentRequest is the inbound payment model as decoded from the request
// body. Amount is a pointer so a missing field can be told apart from zero.
type PaymentRequest struct {
	CardNumber     string   `json:"CardNumber"`
	CardHolderName string   `json:"CardHolderName"`
	ExpiryDate     string   `json:"ExpiryDate"`
	Amount         *float64 `json:"Amount"`
	Currency       string   `json:"Currency"`
	Cvv            string   `json:"Cvv"`
}

// PaymentValidator checks payment requests against the configured limits.
type PaymentValidator struct {
	cfg Config
	now func() time.Time
}

func NewPaymentValidator(cfg Config) *PaymentValidator {
	return &PaymentValidator{cfg: cfg, now: time.Now}
}

// Validate runs the payment checks in their fixed order. The order is
// observable in the serialized response, so it must not change:
// CardNumber, Cvv, CardHolderName, ExpiryDate, Amount, Currency.
// A nil return means the request is valid.
func (v *PaymentValidator) Validate(req PaymentRequest) *Outcome {
	outcome := &Outcome{}

	if strings.TrimSpace(req.CardNumber) == "" {
		outcome.Add("CardNumber", CodeMissing)
	} else if !cards.IsCardNumberValid(req.CardNumber) {
		outcome.Add("CardNumber", CodeInvalidCardNumber)
	}

	if strings.TrimSpace(req.Cvv) == "" {
		outcome.Add("Cvv", CodeMissing)
	} else if !cards.IsCvvValid(req.Cvv) {
		outcome.Add("Cvv", CodeInvalidCvv)
	}

	if strings.TrimSpace(req.CardHolderName) == "" {
		outcome.Add("CardHolderName", CodeMissing)
	}

	if strings.TrimSpace(req.ExpiryDate) == "" {
		outcome.Add("ExpiryDate", CodeMissing)
	} else if expiry, ok := parseExpiryDate(req.ExpiryDate); !ok {
		outcome.Add("ExpiryDate", CodeIncorrectFormat)
	} else if expiry.Before(v.today()) {
		outcome.Add("ExpiryDate", CodeExpiryDateInThePast)
	}

	if req.Amount == nil {
		outcome.Add("Amount", CodeMissing)
	} else {
		if *req.Amount > v.cfg.MaxAmount {
			outcome.Add("Amount", CodeAmountTooHigh)
		}
		if *req.Amount < v.cfg.MinAmount {
			outcome.Add("Amount", CodeAmountTooLow)
		}
	}

	if strings.TrimSpace(req.Currency) == "" {
		outcome.Add("Currency", CodeMissing)
	} else if !v.cfg.SupportsCurrency(req.Currency) {
		outcome.Add("Currency", CodeCurrencyNotSupported)
	}

	return outcome.result()
}

// today is the current UTC date with the time part dropped.
func (v *PaymentValidator) today() time.Time {
	now := v.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseExpiryDate(raw string) (time.Time, bool) {
	for _, layout := range expiryDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
