package vtn

import (
	"context"
	"fmt"

	"github.com/elaadnl/openadr3-go/model"
)

const subscriptionsPrefix = "subscriptions"

// SubscriptionsReader is the read access to the subscriptions collection
// of a VTN.
type SubscriptionsReader interface {
	List(ctx context.Context, filter SubscriptionFilter) ([]model.ExistingSubscription, error)
	Get(ctx context.Context, subscriptionID string) (model.ExistingSubscription, error)
}

// Subscriptions is the full read-write access to the subscriptions
// collection.
type Subscriptions interface {
	SubscriptionsReader
	Create(ctx context.Context, subscription *model.NewSubscription) (model.ExistingSubscription, error)
	Update(ctx context.Context, subscriptionID string, subscription model.ExistingSubscription) (model.ExistingSubscription, error)
	Delete(ctx context.Context, subscriptionID string) error
}

// SubscriptionsClient implements Subscriptions against the HTTP interface
// of a VTN.
type SubscriptionsClient struct {
	c *Client
}

// NewSubscriptionsClient returns a subscriptions client on the given VTN
// connection.
func NewSubscriptionsClient(c *Client) *SubscriptionsClient {
	return &SubscriptionsClient{c: c}
}

// List retrieves subscriptions matching the filter.
func (sc *SubscriptionsClient) List(ctx context.Context, filter SubscriptionFilter) ([]model.ExistingSubscription, error) {
	q, err := filterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("encode subscription filter: %w", err)
	}
	var subscriptions []model.ExistingSubscription
	if err := sc.c.get(ctx, subscriptionsPrefix, q, &subscriptions); err != nil {
		return nil, err
	}
	return subscriptions, nil
}

// Get retrieves a subscription by its identifier.
func (sc *SubscriptionsClient) Get(ctx context.Context, subscriptionID string) (model.ExistingSubscription, error) {
	var subscription model.ExistingSubscription
	if err := sc.c.get(ctx, subscriptionsPrefix+"/"+subscriptionID, nil, &subscription); err != nil {
		return model.ExistingSubscription{}, err
	}
	return subscription, nil
}

// Create pushes a new subscription to the VTN and returns the created
// subscription.
func (sc *SubscriptionsClient) Create(ctx context.Context, subscription *model.NewSubscription) (model.ExistingSubscription, error) {
	if err := subscription.Validate(); err != nil {
		return model.ExistingSubscription{}, fmt.Errorf("validate new subscription: %w", err)
	}
	if err := subscription.MarkCreated(); err != nil {
		return model.ExistingSubscription{}, err
	}
	var created model.ExistingSubscription
	if err := sc.c.post(ctx, subscriptionsPrefix, subscription, &created); err != nil {
		subscription.ReleaseCreated()
		return model.ExistingSubscription{}, err
	}
	return created, nil
}

// Update replaces the subscription with the given identifier.
func (sc *SubscriptionsClient) Update(ctx context.Context, subscriptionID string, subscription model.ExistingSubscription) (model.ExistingSubscription, error) {
	if subscriptionID != subscription.ID {
		return model.ExistingSubscription{}, fmt.Errorf("subscription id %q does not match id %q of the updated subscription", subscriptionID, subscription.ID)
	}
	if err := subscription.Validate(); err != nil {
		return model.ExistingSubscription{}, fmt.Errorf("validate subscription: %w", err)
	}
	var updated model.ExistingSubscription
	if err := sc.c.put(ctx, subscriptionsPrefix+"/"+subscriptionID, subscription, &updated); err != nil {
		return model.ExistingSubscription{}, err
	}
	return updated, nil
}

// Delete removes the subscription with the given identifier.
func (sc *SubscriptionsClient) Delete(ctx context.Context, subscriptionID string) error {
	return sc.c.delete(ctx, subscriptionsPrefix+"/"+subscriptionID)
}
