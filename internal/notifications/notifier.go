package notifications

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"fieldbook/config"
	"fieldbook/infras/kafka"
	bookingModel "fieldbook/internal/domains/booking/model"
	fieldModel "fieldbook/internal/domains/field/model"
	userModel "fieldbook/internal/domains/user/model"
	"fieldbook/shared/constant"
	"fieldbook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingCreated   = "booking.created"
	EventBookingApproved  = "booking.approved"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
	EventHuntStarted      = "hunt.started"

	emailDateFormat = "January 02, 2006"
)

// BookingEvent carries everything a notification channel needs to render a
// booking lifecycle message without further lookups.
type BookingEvent struct {
	Booking   bookingModel.Booking
	Field     fieldModel.Field
	Hunter    userModel.User
	Outfitter userModel.User
}

type Notifier interface {
	BookingCreated(ctx context.Context, evt BookingEvent)
	BookingApproved(ctx context.Context, evt BookingEvent)
	BookingRejected(ctx context.Context, evt BookingEvent)
	BookingCancelled(ctx context.Context, evt BookingEvent)
	HuntStarted(ctx context.Context, evt BookingEvent)
}

type notifierImpl struct {
	cfg   *config.Config
	kafka kafka.Client
}

func New(cfg *config.Config, kafka kafka.Client) Notifier {
	return &notifierImpl{
		cfg:   cfg,
		kafka: kafka,
	}
}

func (n *notifierImpl) BookingCreated(ctx context.Context, evt BookingEvent) {
	day := timezone.Format(evt.Booking.BookingDate, emailDateFormat)

	n.sendEmail(evt.Hunter.Email, fmt.Sprintf("Booking received for %s", evt.Field.Name),
		fmt.Sprintf("Hi %s, your booking at %s on %s for %d hunter(s) has been received with status %q.",
			evt.Hunter.FullName, evt.Field.Name, day, evt.Booking.NumHunters, evt.Booking.Status))
	n.sendEmail(evt.Outfitter.Email, fmt.Sprintf("New booking at %s", evt.Field.Name),
		fmt.Sprintf("%s booked %s on %s for %d hunter(s).",
			evt.Hunter.FullName, evt.Field.Name, day, evt.Booking.NumHunters))

	n.publish(ctx, EventBookingCreated, evt)
}

func (n *notifierImpl) BookingApproved(ctx context.Context, evt BookingEvent) {
	day := timezone.Format(evt.Booking.BookingDate, emailDateFormat)

	n.sendEmail(evt.Hunter.Email, fmt.Sprintf("Booking confirmed for %s", evt.Field.Name),
		fmt.Sprintf("Hi %s, your booking at %s on %s has been confirmed. Good hunting!",
			evt.Hunter.FullName, evt.Field.Name, day))

	n.publish(ctx, EventBookingApproved, evt)
}

func (n *notifierImpl) BookingRejected(ctx context.Context, evt BookingEvent) {
	day := timezone.Format(evt.Booking.BookingDate, emailDateFormat)

	n.sendEmail(evt.Hunter.Email, fmt.Sprintf("Booking declined for %s", evt.Field.Name),
		fmt.Sprintf("Hi %s, your booking at %s on %s was declined. Your payment will be refunded.",
			evt.Hunter.FullName, evt.Field.Name, day))

	n.publish(ctx, EventBookingRejected, evt)
}

func (n *notifierImpl) BookingCancelled(ctx context.Context, evt BookingEvent) {
	day := timezone.Format(evt.Booking.BookingDate, emailDateFormat)

	n.sendEmail(evt.Outfitter.Email, fmt.Sprintf("Booking cancelled at %s", evt.Field.Name),
		fmt.Sprintf("%s cancelled their booking at %s on %s.",
			evt.Hunter.FullName, evt.Field.Name, day))

	n.publish(ctx, EventBookingCancelled, evt)
}

func (n *notifierImpl) HuntStarted(ctx context.Context, evt BookingEvent) {
	n.sendEmail(evt.Outfitter.Email, fmt.Sprintf("Hunt under way at %s", evt.Field.Name),
		fmt.Sprintf("%s has started their hunt at %s.", evt.Hunter.FullName, evt.Field.Name))
	n.sendEmail(n.cfg.Notification.OperatorEmail, fmt.Sprintf("Hunt under way at %s", evt.Field.Name),
		fmt.Sprintf("%s has started their hunt at %s.", evt.Hunter.FullName, evt.Field.Name))

	n.publish(ctx, EventHuntStarted, evt)
}

// sendEmail writes the message to the log as a console email. Delivery through
// a real provider plugs in here.
func (n *notifierImpl) sendEmail(to, subject, body string) {
	log.Info().
		Str("from", n.cfg.Notification.FromEmail).
		Str("to", to).
		Str("subject", subject).
		Str("body", body).
		Msg("email notification")
}

type eventPayload struct {
	Event      string `json:"event"`
	BookingID  string `json:"booking_id"`
	FieldID    string `json:"field_id"`
	FieldName  string `json:"field_name"`
	HunterID   string `json:"hunter_id"`
	Date       string `json:"date"`
	NumHunters int    `json:"num_hunters"`
	Status     string `json:"status"`
}

func (n *notifierImpl) publish(ctx context.Context, event string, evt BookingEvent) {
	topic := n.cfg.Kafka.BookingTopic
	if event == EventHuntStarted {
		topic = n.cfg.Kafka.HuntTopic
	}

	msg := kafka.Message{
		Key: evt.Booking.ID,
		Value: eventPayload{
			Event:      event,
			BookingID:  evt.Booking.ID,
			FieldID:    evt.Field.ID,
			FieldName:  evt.Field.Name,
			HunterID:   evt.Hunter.ID,
			Date:       timezone.Format(evt.Booking.BookingDate, constant.DayFormat),
			NumHunters: evt.Booking.NumHunters,
			Status:     evt.Booking.Status,
		},
	}

	if err := n.kafka.SendMessages(ctx, topic, msg); err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
	}
}
