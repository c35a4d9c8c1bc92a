package payment

import (
	"context"
	"errors"
	"log"

	"github.com/sebuszqo/PaymentGateway/internal/events"
)

var (
	ErrSettlementFailed  = errors.New("settlement failed")
	ErrPersistenceFailed = errors.New("payment could not be persisted")
)

// SettlementClient is the external endpoint that authorizes and charges a
// payment. On success it returns the external transaction identifier, which
// becomes the payment's public uid.
type SettlementClient interface {
	Settle(ctx context.Context, payment *Payment) (string, error)
}

type Service interface {
	Create(ctx context.Context, payment *Payment) error
	GetByUid(uid string) (*Payment, error)
	GetAll() ([]*Payment, error)
}

type service struct {
	repo      Repository
	bank      SettlementClient
	publisher events.Publisher
}

func NewPaymentService(repo Repository, bank SettlementClient, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		bank:      bank,
		publisher: publisher,
	}
}

// Create runs the payment workflow: settle with the bank, then persist. A
// rejected settlement leaves nothing behind. A persistence failure after a
// successful settlement is still reported as a failure even though the charge
// went through; there is no compensating reversal call.
func (s *service) Create(ctx context.Context, payment *Payment) error {
	log.Printf("Connecting with bank to process payment")
	transactionID, err := s.bank.Settle(ctx, payment)
	if err != nil {
		log.Printf("Bank rejected payment: %v", err)
		return ErrSettlementFailed
	}
	log.Printf("Payment has been successfully made")

	payment.Uid = transactionID
	payment.State = StateCompleted

	id, err := s.repo.insert(payment)
	if err != nil || id <= 0 {
		log.Printf("Unknown error occured when inserting payment into DB (charge %s already made): %v", transactionID, err)
		return ErrPersistenceFailed
	}

	if err := s.publisher.PublishPaymentCompleted(ctx, events.PaymentCompleted{
		Uid:         payment.Uid,
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		PaymentDate: payment.PaymentDate,
	}); err != nil {
		// Publishing is best effort, the payment itself succeeded.
		log.Printf("Could not publish payment completed event: %v", err)
	}

	return nil
}

func (s *service) GetByUid(uid string) (*Payment, error) {
	return s.repo.getByUid(uid)
}

func (s *service) GetAll() ([]*Payment, error) {
	return s.repo.getAll()
}
