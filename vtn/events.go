package vtn

import (
	"context"
	"fmt"

	"github.com/elaadnl/openadr3-go/model"
)

const eventsPrefix = "events"

// EventsReader is the read access to the events collection of a VTN.
type EventsReader interface {
	List(ctx context.Context, filter EventFilter) ([]model.ExistingEvent, error)
	Get(ctx context.Context, eventID string) (model.ExistingEvent, error)
}

// Events is the full read-write access to the events collection.
type Events interface {
	EventsReader
	Create(ctx context.Context, event *model.NewEvent) (model.ExistingEvent, error)
	Update(ctx context.Context, eventID string, event model.ExistingEvent) (model.ExistingEvent, error)
	Delete(ctx context.Context, eventID string) error
}

// EventsClient implements Events against the HTTP interface of a VTN.
type EventsClient struct {
	c *Client
}

// NewEventsClient returns an events client on the given VTN connection.
func NewEventsClient(c *Client) *EventsClient {
	return &EventsClient{c: c}
}

// List retrieves events matching the filter.
func (ec *EventsClient) List(ctx context.Context, filter EventFilter) ([]model.ExistingEvent, error) {
	q, err := filterQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("encode event filter: %w", err)
	}
	var events []model.ExistingEvent
	if err := ec.c.get(ctx, eventsPrefix, q, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get retrieves an event by its identifier.
func (ec *EventsClient) Get(ctx context.Context, eventID string) (model.ExistingEvent, error) {
	var event model.ExistingEvent
	if err := ec.c.get(ctx, eventsPrefix+"/"+eventID, nil, &event); err != nil {
		return model.ExistingEvent{}, err
	}
	return event, nil
}

// Create pushes a new event to the VTN and returns the created event. A
// NewEvent can be created exactly once; the guard is released again when
// the request fails.
func (ec *EventsClient) Create(ctx context.Context, event *model.NewEvent) (model.ExistingEvent, error) {
	if err := event.Validate(); err != nil {
		return model.ExistingEvent{}, fmt.Errorf("validate new event: %w", err)
	}
	if err := event.MarkCreated(); err != nil {
		return model.ExistingEvent{}, err
	}
	var created model.ExistingEvent
	if err := ec.c.post(ctx, eventsPrefix, event, &created); err != nil {
		event.ReleaseCreated()
		return model.ExistingEvent{}, err
	}
	return created, nil
}

// Update replaces the event with the given identifier. The identifier
// must match the id of the event body.
func (ec *EventsClient) Update(ctx context.Context, eventID string, event model.ExistingEvent) (model.ExistingEvent, error) {
	if eventID != event.ID {
		return model.ExistingEvent{}, fmt.Errorf("event id %q does not match id %q of the updated event", eventID, event.ID)
	}
	if err := event.Validate(); err != nil {
		return model.ExistingEvent{}, fmt.Errorf("validate event: %w", err)
	}
	var updated model.ExistingEvent
	if err := ec.c.put(ctx, eventsPrefix+"/"+eventID, event, &updated); err != nil {
		return model.ExistingEvent{}, err
	}
	return updated, nil
}

// Delete removes the event with the given identifier.
func (ec *EventsClient) Delete(ctx context.Context, eventID string) error {
	return ec.c.delete(ctx, eventsPrefix+"/"+eventID)
}
