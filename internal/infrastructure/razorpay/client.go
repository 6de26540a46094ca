package razorpay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/config"
	"github.com/mandiflow/escrow-order-service/internal/domain"
)

// Client talks to the Razorpay REST API. Orders are created with manual
// capture so authorized funds stay in escrow until capture or refund.
type Client struct {
	baseURL       string
	keyID         string
	keySecret     string
	webhookSecret string
	httpClient    *http.Client
}

func NewClient(cfg config.Razorpay) *Client {
	return &Client{
		baseURL:       cfg.BaseURL,
		keyID:         cfg.KeyID,
		keySecret:     cfg.KeySecret,
		webhookSecret: cfg.WebhookSecret,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

type providerOrderRequest struct {
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Receipt        string            `json:"receipt"`
	Notes          map[string]string `json:"notes"`
	PaymentCapture int               `json:"payment_capture"`
}

type providerOrderResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *Client) CreateProviderOrder(ctx context.Context, localOrderID string, amountPaise int64) (string, error) {
	body := providerOrderRequest{
		Amount:   amountPaise,
		Currency: "INR",
		Receipt:  localOrderID,
		Notes:    map[string]string{"order_id": localOrderID},
		// manual capture keeps authorized funds in escrow
		PaymentCapture: 0,
	}

	var resp providerOrderResponse
	if err := c.post(ctx, "/v1/orders", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) CapturePayment(ctx context.Context, paymentRef string, amountPaise int64) error {
	body := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
	}
	return c.post(ctx, fmt.Sprintf("/v1/payments/%s/capture", paymentRef), body, nil)
}

func (c *Client) RefundPayment(ctx context.Context, paymentRef string, amountPaise int64) error {
	body := map[string]interface{}{
		"amount": amountPaise,
	}
	return c.post(ctx, fmt.Sprintf("/v1/payments/%s/refund", paymentRef), body, nil)
}

// VerifyWebhookSignature checks the hex HMAC-SHA256 of the raw body against
// the x-razorpay-signature header value.
func (c *Client) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	requestBodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	response, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderFailed, err)
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if out != nil {
			return json.Unmarshal(responseBodyBytes, out)
		}
		return nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil || errResp.Error.Description == "" {
		return fmt.Errorf("%w: status %d", domain.ErrProviderFailed, response.StatusCode)
	}
	return fmt.Errorf("%w: %s", domain.ErrProviderFailed, errors.New(errResp.Error.Description))
}
