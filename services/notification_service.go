package services

import "log"

// NotificationType identifies the kind of event being sent to a customer
type NotificationType string

const (
	NotificationOrderConfirmed       NotificationType = "ORDER_CONFIRMED"
	NotificationOrderStatusChanged   NotificationType = "ORDER_STATUS_CHANGED"
	NotificationOrderCancelled       NotificationType = "ORDER_CANCELLED"
	NotificationReservationConfirmed NotificationType = "RESERVATION_CONFIRMED"
	NotificationReservationCancelled NotificationType = "RESERVATION_CANCELLED"
)

// NotificationEvent carries everything a delivery channel needs to contact
// the customer about an order or reservation change
type NotificationEvent struct {
	Type          NotificationType
	Email         string
	Phone         string
	OrderID       uint
	ReservationID uint
	Message       string
}

// NotificationSink dispatches customer notifications. Delivery is
// fire-and-forget: implementations swallow and log their own failures,
// and the lifecycle services never wait on or inspect the outcome.
type NotificationSink interface {
	Notify(event NotificationEvent)
}

// LogNotificationSink writes notification events to the application log.
// It stands in for the email/SMS transports, which live outside this core.
type LogNotificationSink struct{}

// Notify logs the event as an email line and an SMS line
func (LogNotificationSink) Notify(event NotificationEvent) {
	log.Printf("Email to %s: [%s] %s", event.Email, event.Type, event.Message)
	if event.Phone != "" {
		log.Printf("SMS to %s: [EasyServe] %s", event.Phone, event.Message)
	}
}

// dispatch sends the event on a separate goroutine so the calling business
// operation never blocks on notification delivery
func dispatch(sink NotificationSink, event NotificationEvent) {
	if sink == nil {
		return
	}
	go sink.Notify(event)
}
