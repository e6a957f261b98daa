package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/plexdi/studio/modules/billing/infrastructure/payments"
	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/modules/commissions/infrastructure/studioapi"
	"github.com/plexdi/studio/pkg/composables"
	"github.com/plexdi/studio/pkg/eventbus"
)

type IntakeParams struct {
	Name    string
	Email   string
	Discord string
	Details string
	Kind    commission.Kind
	Item    string
	Tier    string
}

type IntakeResult struct {
	Commission  commission.Commission
	CheckoutURL string
}

// IntakeService runs the public commission form's two-step pipeline as
// a saga: create the commission record, then open a checkout session
// keyed by the new record's identifier. When the checkout step fails,
// the just-created record is deleted again so the backend is not left
// holding an orphaned queued commission nobody will pay for.
type IntakeService struct {
	api       studioapi.Client
	checkout  payments.Client
	publisher eventbus.EventBus
}

func NewIntakeService(api studioapi.Client, checkout payments.Client, publisher eventbus.EventBus) *IntakeService {
	return &IntakeService{
		api:       api,
		checkout:  checkout,
		publisher: publisher,
	}
}

func (s *IntakeService) Submit(ctx context.Context, params IntakeParams) (*IntakeResult, error) {
	logger := composables.UseLogger(ctx).WithField("kind", string(params.Kind))

	created, err := s.api.Create(ctx, studioapi.CreateParams{
		Name:    params.Name,
		Email:   params.Email,
		Discord: params.Discord,
		Details: params.Details,
		Kind:    params.Kind,
	})
	if err != nil {
		return nil, fmt.Errorf("submit commission: %w", err)
	}
	s.publisher.Publish(&commission.CreatedEvent{Result: created})
	logger = logger.WithField("commission_id", created.ID())
	logger.Info("commission created")

	// The checkout item defaults to the project type, matching what the
	// intake form sends when no distinct item was picked.
	item := params.Item
	if item == "" {
		item = string(params.Kind)
	}

	checkoutURL, err := s.checkout.CreateCheckoutSession(ctx, payments.CheckoutParams{
		Item:         item,
		Tier:         params.Tier,
		Amount:       1,
		CommissionID: created.ID(),
	})
	if err != nil {
		// Compensate: a commission without a checkout session must not
		// linger server-side in queued status.
		if deleteErr := s.api.Delete(ctx, created.ID()); deleteErr != nil {
			logger.WithError(deleteErr).Error("failed to delete commission after checkout failure")
		} else if pubErr := s.publisher.PublishE(&commission.CompensatedEvent{
			ID:     created.ID(),
			Action: "intake_rollback",
			Reason: err.Error(),
		}); pubErr != nil && !errors.Is(pubErr, eventbus.ErrNoSubscribers) {
			logger.WithError(pubErr).Error("rollback event handler failed")
		}
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	logger.Info("checkout session created")
	return &IntakeResult{Commission: created, CheckoutURL: checkoutURL}, nil
}
