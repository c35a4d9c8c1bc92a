package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sebuszqo/PaymentGateway/internal/payment"
)

// settleRequest is the payload posted to the settlement endpoint.
type settleRequest struct {
	CardNumber     string  `json:"CardNumber"`
	CardHolderName string  `json:"CardHolderName"`
	ExpiryDate     string  `json:"ExpiryDate"`
	Amount         float64 `json:"Amount"`
	Currency       string  `json:"Currency"`
	Cvv            string  `json:"Cvv"`
}

// Client calls the external settlement endpoint. Success is exactly HTTP 200;
// the response body is the external transaction identifier.
type Client struct {
	bankURI    string
	httpClient *http.Client
}

func NewClient(bankURI string) *Client {
	return &Client{
		bankURI:    bankURI,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Settle(ctx context.Context, p *payment.Payment) (string, error) {
	body, err := json.Marshal(settleRequest{
		CardNumber:     p.CardNumber,
		CardHolderName: p.CardHolderName,
		ExpiryDate:     p.ExpiryDate,
		Amount:         p.Amount,
		Currency:       p.Currency,
		Cvv:            p.Cvv,
	})
	if err != nil {
		return "", fmt.Errorf("could not encode settlement request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.bankURI, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("could not build settlement request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not reach bank: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bank returned status %s", resp.Status)
	}

	transactionID, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read bank response: %v", err)
	}

	return string(transactionID), nil
}
