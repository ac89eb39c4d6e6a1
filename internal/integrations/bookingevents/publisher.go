// Package bookingevents публикует события жизненного цикла бронирований в RabbitMQ.
package bookingevents

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroundBookingService/internal/domain"
)

// MessagePublisher транспорт (pkg/mq.Publisher)
type MessagePublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Publisher публикует события бронирований
type Publisher struct {
	mq  MessagePublisher
	now func() time.Time
}

// NewPublisher создает publisher поверх транспорта
func NewPublisher(mq MessagePublisher) *Publisher {
	return &Publisher{
		mq:  mq,
		now: time.Now,
	}
}

// BookingCreated публикует booking.created
func (p *Publisher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return p.publish(ctx, RoutingKeyCreated, p.newEvent(RoutingKeyCreated, b))
}

// StatusChanged публикует booking.status_changed
func (p *Publisher) StatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus, actorID string) error {
	event := p.newEvent(RoutingKeyStatusChanged, b)
	event.PreviousStatus = string(from)
	event.ActorID = actorID
	return p.publish(ctx, RoutingKeyStatusChanged, event)
}

// Deleted публикует booking.deleted
func (p *Publisher) Deleted(ctx context.Context, b *domain.Booking, actorID string) error {
	event := p.newEvent(RoutingKeyDeleted, b)
	event.ActorID = actorID
	return p.publish(ctx, RoutingKeyDeleted, event)
}

func (p *Publisher) publish(ctx context.Context, key string, event Event) error {
	if err := p.mq.PublishJSON(ctx, key, event); err != nil {
		return fmt.Errorf("%w: %s booking=%s: %v", ErrPublish, key, event.BookingID, err)
	}
	return nil
}

func (p *Publisher) newEvent(eventType string, b *domain.Booking) Event {
	return Event{
		Type:        eventType,
		BookingID:   b.BookingID,
		UserID:      b.UserID,
		FacilityID:  b.FacilityID,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.TimeSlot.StartTime.String(),
		EndTime:     b.TimeSlot.EndTime.String(),
		Status:      string(b.Status),
		TotalAmount: b.Pricing.TotalAmount.StringFixed(2),
		Currency:    b.Pricing.Currency,
		OccurredAt:  p.now().UTC(),
	}
}

// NopPublisher используется, когда RabbitMQ выключен
type NopPublisher struct{}

func (NopPublisher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	return nil
}

func (NopPublisher) StatusChanged(ctx context.Context, b *domain.Booking, from domain.BookingStatus, actorID string) error {
	return nil
}

func (NopPublisher) Deleted(ctx context.Context, b *domain.Booking, actorID string) error {
	return nil
}
