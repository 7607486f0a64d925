package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/razorpay/razorpay-go"
)

type RazorpayProvider struct {
	client *razorpay.Client
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	client := razorpay.NewClient(keyID, keySecret)

	return &RazorpayProvider{
		client: client,
	}
}

// razorpayDiscountPrefix marks synthetic discount references. Razorpay has
// no standalone coupon object, so the discount reference encodes the
// percentage and is applied to the payment-link amount at session creation.
const razorpayDiscountPrefix = "pct:"

func (r *RazorpayProvider) CreateCheckoutSession(ctx context.Context, request *CheckoutSessionRequest) (*CheckoutSessionResponse, error) {
	var amount int64
	for _, item := range request.LineItems {
		amount += item.UnitAmount * item.Quantity
	}

	if request.DiscountID != "" {
		percentage, err := parseRazorpayDiscount(request.DiscountID)
		if err != nil {
			return nil, err
		}
		amount -= amount * int64(percentage) / 100
	}

	notes := map[string]interface{}{}
	for key, value := range request.Metadata {
		notes[key] = value
	}

	linkData := map[string]interface{}{
		"amount":       amount,
		"currency":     strings.ToUpper(request.Currency),
		"callback_url": request.SuccessURL,
		"notes":        notes,
	}

	link, err := r.client.PaymentLink.Create(linkData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	return &CheckoutSessionResponse{
		SessionID: link["id"].(string),
	}, nil
}

func (r *RazorpayProvider) RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSessionDetails, error) {
	link, err := r.client.PaymentLink.Fetch(sessionID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment link: %w", err)
	}

	metadata := map[string]string{}
	if notes, ok := link["notes"].(map[string]interface{}); ok {
		for key, value := range notes {
			metadata[key] = fmt.Sprintf("%v", value)
		}
	}

	status := fmt.Sprintf("%v", link["status"])
	if status == "paid" {
		status = PaymentStatusPaid
	}

	var amount int64
	switch v := link["amount"].(type) {
	case float64:
		amount = int64(v)
	case int:
		amount = int64(v)
	}

	return &CheckoutSessionDetails{
		SessionID:     sessionID,
		PaymentStatus: status,
		AmountTotal:   amount,
		Metadata:      metadata,
	}, nil
}

func (r *RazorpayProvider) CreateDiscount(ctx context.Context, percentage float64) (string, error) {
	if percentage < 0 || percentage > 100 {
		return "", fmt.Errorf("discount percentage out of range: %v", percentage)
	}
	return fmt.Sprintf("%s%g", razorpayDiscountPrefix, percentage), nil
}

func parseRazorpayDiscount(discountID string) (float64, error) {
	if !strings.HasPrefix(discountID, razorpayDiscountPrefix) {
		return 0, fmt.Errorf("unrecognized discount reference: %s", discountID)
	}

	percentage, err := strconv.ParseFloat(strings.TrimPrefix(discountID, razorpayDiscountPrefix), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid discount reference %s: %w", discountID, err)
	}

	return percentage, nil
}
