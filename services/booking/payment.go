package booking

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentProcessor creates a payment intent for a confirmed booking and
// returns its identifier. Capture/settlement is handled by the provider's
// webhooks outside this service.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (string, error)
}

// StripePaymentProcessor implements PaymentProcessor on the Stripe API.
// stripe.Key must be set before use (done in main from config).
type StripePaymentProcessor struct {
	logger *zap.Logger
}

// NewStripePaymentProcessor creates a Stripe-backed payment processor.
func NewStripePaymentProcessor(logger *zap.Logger) *StripePaymentProcessor {
	return &StripePaymentProcessor{logger: logger}
}

func (p *StripePaymentProcessor) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	p.logger.Info("payment intent created",
		zap.String("paymentIntentId", intent.ID),
		zap.Int64("amount", amount),
		zap.String("currency", currency))
	return intent.ID, nil
}
