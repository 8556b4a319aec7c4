package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jwalitptl/booking-api/internal/config"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

const stripeAPIVersion = "2024-06-20"

// Service creates payment intents against the Stripe API. Stripe keeps
// the intent state; nothing is persisted locally until the client
// confirms the payment and patches the booking.
type Service struct {
	secretKey  string
	currency   string
	baseURL    string
	httpClient *http.Client
}

func NewService(cfg config.StripeConfig) *Service {
	currency := cfg.Currency
	if currency == "" {
		currency = "usd"
	}
	return &Service{
		secretKey:  cfg.SecretKey,
		currency:   currency,
		baseURL:    "https://api.stripe.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURL overrides the Stripe API base URL (for testing).
func (s *Service) WithBaseURL(baseURL string) *Service {
	if baseURL != "" {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
	return s
}

// CreateIntent requests a card payment intent for the given price and
// returns the client secret needed to confirm it. Price is in major
// currency units; Stripe wants minor units.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := int64(math.Round(price * 100))

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", s.currency)
	form.Set("payment_method_types[]", "card")

	apiURL := s.baseURL + "/v1/payment_intents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", stripeAPIVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Upstream("stripe", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", apperrors.Upstream("stripe", fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var parsed paymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.Upstream("stripe", fmt.Errorf("decode response: %w", err))
	}
	if parsed.ClientSecret == "" {
		return "", apperrors.Upstream("stripe", fmt.Errorf("response missing client secret"))
	}

	return parsed.ClientSecret, nil
}

// paymentIntent is the subset of Stripe's PaymentIntent we need.
type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}
