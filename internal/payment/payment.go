package payment

import (
	"time"

	"github.com/sebuszqo/PaymentGateway/internal/cards"
)

// State is the payment lifecycle state. A payment is created New and moves to
// Completed only after a successful settlement call; it never reverts.
type State string

const (
	StateNew       State = "New"
	StateCompleted State = "Completed"
)

// Payment is the persisted payment record. The Uid is assigned by the
// settlement collaborator on success.
type Payment struct {
	ID             int64
	Uid            string
	CardNumber     string
	CardHolderName string
	ExpiryDate     string
	Amount         float64
	Currency       string
	Cvv            string
	PaymentDate    time.Time
	State          State
}

// Masking widths of the response view: card number keeps its last 5
// characters, expiry date its last 2, the CVV nothing.
const (
	cardNumberKeep = 5
	expiryDateKeep = 2
	cvvKeep        = 0
)

// Model is the caller-visible projection of a payment with the sensitive
// fields partially redacted. It is never persisted.
type Model struct {
	Uid         string    `json:"Uid"`
	CardNumber  string    `json:"CardNumber,omitempty"`
	ExpiryDate  string    `json:"ExpiryDate,omitempty"`
	Amount      float64   `json:"Amount"`
	Currency    string    `json:"Currency"`
	Cvv         string    `json:"Cvv,omitempty"`
	PaymentDate time.Time `json:"PaymentDate"`
	State       State     `json:"State"`
}

// ToModel builds the masked response view of a payment.
func ToModel(p *Payment) *Model {
	if p == nil {
		return nil
	}
	return &Model{
		Uid:         p.Uid,
		CardNumber:  cards.Mask(p.CardNumber, cardNumberKeep),
		ExpiryDate:  cards.Mask(p.ExpiryDate, expiryDateKeep),
		Amount:      p.Amount,
		Currency:    p.Currency,
		Cvv:         cards.Mask(p.Cvv, cvvKeep),
		PaymentDate: p.PaymentDate,
		State:       p.State,
	}
}
