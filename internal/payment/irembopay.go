package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("payment gateway not configured")
	ErrGateway       = errors.New("payment gateway error")
)

// Client issues invoices against the IremboPay REST API. The generated
// invoice number is handed to the browser widget; settlement stays on the
// provider side.
type Client struct {
	baseURL    string
	secretKey  string
	publicKey  string
	accountID  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey, publicKey, accountID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		secretKey:  secretKey,
		publicKey:  publicKey,
		accountID:  accountID,
		httpClient: httpClient,
	}
}

// PublicKey is exposed to clients for the script-injected payment modal.
func (c *Client) PublicKey() string {
	return c.publicKey
}

type Invoice struct {
	InvoiceNumber string  `json:"invoiceNumber"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"paymentStatus"`
	PaymentURL    string  `json:"paymentLinkUrl"`
}

type invoiceEnvelope struct {
	Data Invoice `json:"data"`
}

type paymentItem struct {
	Code       string  `json:"code"`
	Quantity   int     `json:"quantity"`
	UnitAmount float64 `json:"unitAmount"`
}

type createInvoiceRequest struct {
	TransactionID            string        `json:"transactionId"`
	PaymentAccountIdentifier string        `json:"paymentAccountIdentifier"`
	PaymentItems             []paymentItem `json:"paymentItems"`
	Description              string        `json:"description"`
	ExpiryAt                 string        `json:"expiryAt"`
	Language                 string        `json:"language"`
}

func (c *Client) CreateInvoice(ctx context.Context, amount float64, description string) (*Invoice, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrGateway)
	}
	if description == "" {
		description = "Payment for service"
	}
	payload := createInvoiceRequest{
		TransactionID:            "AFT-" + uuid.NewString(),
		PaymentAccountIdentifier: c.accountID,
		PaymentItems: []paymentItem{
			{Code: "trade-order", Quantity: 1, UnitAmount: amount},
		},
		Description: description,
		ExpiryAt:    time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		Language:    "EN",
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments/invoices", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("irembopay-secretkey", c.secretKey)
	req.Header.Set("X-API-Version", "2")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[payment] stage=create_fail err=%v", err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		log.Printf("[payment] stage=create_bad_status status=%d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}
	var env invoiceEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if env.Data.InvoiceNumber == "" {
		return nil, fmt.Errorf("%w: missing invoice number", ErrGateway)
	}
	log.Printf("[payment] stage=create_done invoice=%s totalMs=%d", env.Data.InvoiceNumber, time.Since(start).Milliseconds())
	return &env.Data, nil
}

func (c *Client) GetInvoice(ctx context.Context, invoiceNumber string) (*Invoice, error) {
	if c.secretKey == "" {
		return nil, ErrNotConfigured
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/invoices/"+invoiceNumber, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("irembopay-secretkey", c.secretKey)
	req.Header.Set("X-API-Version", "2")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: invoice not found", ErrGateway)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}
	var env invoiceEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return &env.Data, nil
}
