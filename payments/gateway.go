package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "github.com/almusafir/travel_booking/configs"
)

const defaultGatewayBaseURL = "https://api.razorpay.com/v1"

// OrderRequest describes the remote order for one installment. Amount is in
// the gateway's sub-unit convention (minor unit x100). Notes travel back on
// the payment confirmation and are used for reconciliation.
type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Capture  int               `json:"payment_capture"`
	Notes    map[string]string `json:"notes"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// GatewayClient creates remote payment orders. The HTTP implementation talks
// to the real provider; tests substitute a fake.
type GatewayClient interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

type HTTPGatewayClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewHTTPGatewayClient(keyID, keySecret string) *HTTPGatewayClient {
	baseURL := config.Config("GATEWAY_BASE_URL")
	if baseURL == "" {
		baseURL = defaultGatewayBaseURL
	}
	return &HTTPGatewayClient{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGatewayClient) CreateOrder(ctx context.Context, orderReq OrderRequest) (*Order, error) {
	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/orders", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %v", err)
	}
	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send order request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Gateway API error: status %d, body: %s", resp.StatusCode, string(respBody))
		return nil, fmt.Errorf("gateway returned non-200 status: %d", resp.StatusCode)
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order response: %v", err)
	}
	return &order, nil
}
