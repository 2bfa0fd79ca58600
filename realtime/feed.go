package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"orderhub/models"

	"github.com/redis/go-redis/v9"
)

const (
	EventInsert = "insert"
	EventUpdate = "update"
)

// Event is one row-level change on the orders table of a restaurant.
// Insert events carry only the order number; consumers re-fetch the full
// joined record. Update events carry just the changed columns.
type Event struct {
	Kind         string                 `json:"kind"`
	RestaurantID int                    `json:"restaurant_id"`
	OrderNumber  string                 `json:"order_number"`
	Columns      map[string]interface{} `json:"columns,omitempty"`
}

// Feed publishes and subscribes to order change events over Redis pub/sub,
// one channel per restaurant. A nil Redis client disables the feed: the
// platform keeps accepting orders, admins just poll.
type Feed struct {
	client *redis.Client
}

func NewFeed(client *redis.Client) *Feed {
	return &Feed{client: client}
}

func channelFor(restaurantID int) string {
	return fmt.Sprintf("orders:%d", restaurantID)
}

func (f *Feed) Enabled() bool {
	return f.client != nil
}

func (f *Feed) PublishInsert(ctx context.Context, restaurantID int, order *models.Order) error {
	return f.publish(ctx, Event{
		Kind:         EventInsert,
		RestaurantID: restaurantID,
		OrderNumber:  order.OrderNumber,
	})
}

func (f *Feed) PublishUpdate(ctx context.Context, restaurantID int, orderNumber string, columns map[string]interface{}) error {
	return f.publish(ctx, Event{
		Kind:         EventUpdate,
		RestaurantID: restaurantID,
		OrderNumber:  orderNumber,
		Columns:      columns,
	})
}

func (f *Feed) publish(ctx context.Context, ev Event) error {
	if f.client == nil {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, channelFor(ev.RestaurantID), payload).Err()
}

// Subscription is an acquired change-feed handle. Close releases the
// underlying pub/sub on every exit path; reconnection on transport drops is
// handled by the go-redis client.
type Subscription struct {
	pubsub *redis.PubSub
	events chan Event
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe opens a change feed filtered to one restaurant.
func (f *Feed) Subscribe(ctx context.Context, restaurantID int) (*Subscription, error) {
	if f.client == nil {
		return nil, fmt.Errorf("realtime feed is disabled")
	}

	pubsub := f.client.Subscribe(ctx, channelFor(restaurantID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan Event, 16),
	}

	go func() {
		defer close(sub.events)
		for msg := range pubsub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			select {
			case sub.events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return sub, nil
}
