package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const validCardNumber = "4916132996393639"

func floatPtr(v float64) *float64 { return &v }

func validPaymentRequest() PaymentRequest {
	return PaymentRequest{
		CardNumber:     validCardNumber,
		CardHolderName: "John Doe",
		ExpiryDate:     "2099-01-01",
		Amount:         floatPtr(100),
		Currency:       "GBP",
		Cvv:            "123",
	}
}

func TestValidatePayment_ValidRequest(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())

	outcome := v.Validate(validPaymentRequest())

	assert.Nil(t, outcome)
}

func TestValidatePayment_EmptyRequestSerializationOrder(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())

	req := PaymentRequest{CardHolderName: "John Doe"}
	outcome := v.Validate(req)
	assert.NotNil(t, outcome)

	data, err := json.Marshal(outcome)
	assert.NoError(t, err)
	assert.Equal(t,
		`{"CardNumber":{"ErrorCode":"missing"},"Cvv":{"ErrorCode":"missing"},"ExpiryDate":{"ErrorCode":"missing"},"Amount":{"ErrorCode":"missing"},"Currency":{"ErrorCode":"missing"}}`,
		string(data))
}

func TestValidatePayment_CardHolderNameMissing(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())

	req := validPaymentRequest()
	req.CardHolderName = "   "
	outcome := v.Validate(req)

	data, err := json.Marshal(outcome)
	assert.NoError(t, err)
	assert.Equal(t, `{"CardHolderName":{"ErrorCode":"missing"}}`, string(data))
}

func TestValidatePayment_InvalidCardNumber(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())

	req := validPaymentRequest()
	req.CardNumber = "4916132996393638"
	outcome := v.Validate(req)

	data, err := json.Marshal(outcome)
	assert.NoError(t, err)
	assert.Equal(t, `{"CardNumber":{"ErrorCode":"invalid_card_number"}}`, string(data))
}

func TestValidatePayment_InvalidCvv(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())

	req := validPaymentRequest()
	req.Cvv = "12"
	outcome := v.Validate(req)

	data, err := json.Marshal(outcome)
	assert.NoError(t, err)
	assert.Equal(t, `{"Cvv":{"ErrorCode":"invalid_cvv"}}`, string(data))
}

func TestValidatePayment_ExpiryDate(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())

	tests := []struct {
		name       string
		expiryDate string
		wantCode   string
	}{
		{"unparseable", "not-a-date", "incorrect_format"},
		{"in the past", "2001-01-01", "expirydate_in_the_past"},
		{"month year in the past", "01/2001", "expirydate_in_the_past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPaymentRequest()
			req.ExpiryDate = tt.expiryDate
			outcome := v.Validate(req)

			data, err := json.Marshal(outcome)
			assert.NoError(t, err)
			assert.Equal(t, `{"ExpiryDate":{"ErrorCode":"`+tt.wantCode+`"}}`, string(data))
		})
	}
}

func TestValidatePayment_ExpiryDateTodayIsNotInThePast(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())
	v.now = func() time.Time { return time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC) }

	req := validPaymentRequest()
	req.ExpiryDate = "2024-06-15"
	outcome := v.Validate(req)

	assert.Nil(t, outcome)
}

func TestValidatePayment_AmountBounds(t *testing.T) {
	v := NewPaymentValidator(Config{
		MinAmount:           10,
		MaxAmount:           1000,
		SupportedCurrencies: map[string]struct{}{"GBP": {}},
	})

	req := validPaymentRequest()
	req.Amount = floatPtr(5)
	outcome := v.Validate(req)
	data, err := json.Marshal(outcome)
	assert.NoError(t, err)
	assert.Equal(t, `{"Amount":{"ErrorCode":"amount_too_low"}}`, string(data))

	req.Amount = floatPtr(5000)
	outcome = v.Validate(req)
	data, err = json.Marshal(outcome)
	assert.NoError(t, err)
	assert.Equal(t, `{"Amount":{"ErrorCode":"amount_too_high"}}`, string(data))

	req.Amount = floatPtr(500)
	assert.Nil(t, v.Validate(req))
}

func TestValidatePayment_CurrencyNotSupported(t *testing.T) {
	v := NewPaymentValidator(DefaultConfig())

	req := validPaymentRequest()
	req.Currency = "PLN"
	outcome := v.Validate(req)

	data, err := json.Marshal(outcome)
	assert.NoError(t, err)
	assert.Equal(t, `{"Currency":{"ErrorCode":"currency_not_supported"}}`, string(data))
}
