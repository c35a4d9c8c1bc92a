package payment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sebuszqo/PaymentGateway/internal/validation"
)

type Handler struct {
	paymentService Service
	validator      *validation.PaymentValidator
}

func NewHandler(paymentService Service, validator *validation.PaymentValidator) *Handler {
	return &Handler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encoding error: %v", err)
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req validation.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if outcome := h.validator.Validate(req); outcome != nil {
		validation.WriteTeapot(w, outcome)
		return
	}

	newPayment := &Payment{
		CardNumber:     req.CardNumber,
		CardHolderName: req.CardHolderName,
		ExpiryDate:     req.ExpiryDate,
		Amount:         *req.Amount,
		Currency:       req.Currency,
		Cvv:            req.Cvv,
		PaymentDate:    time.Now().UTC(),
		State:          StateNew,
	}

	if err := h.paymentService.Create(r.Context(), newPayment); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, ToModel(newPayment))
}

func (h *Handler) HandleGetByUid(w http.ResponseWriter, r *http.Request) {
	found, err := h.paymentService.GetByUid(r.PathValue("uid"))
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, ToModel(found))
}

func (h *Handler) HandleGetAll(w http.ResponseWriter, _ *http.Request) {
	payments, err := h.paymentService.GetAll()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	models := make([]*Model, 0, len(payments))
	for _, p := range payments {
		models = append(models, ToModel(p))
	}
	respondJSON(w, http.StatusOK, models)
}
