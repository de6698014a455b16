package notify

import "go.uber.org/zap"

const (
	EventAppointmentBooked      = "appointment_booked"
	EventAppointmentConfirmed   = "appointment_confirmed"
	EventAppointmentRescheduled = "appointment_rescheduled"
	EventAppointmentCanceled    = "appointment_canceled"
	EventAppointmentCompleted   = "appointment_completed"
	EventPaymentRefunded        = "payment_refunded"
	EventPayrollSettled         = "payroll_settled"
)

// Notifier is the delivery collaborator (email, push, websocket). The
// scheduling core only hands events over; delivery failures never fail
// a lifecycle operation.
type Notifier interface {
	Send(recipientID uint, event string, payload map[string]any) error
}

type Message struct {
	RecipientID uint
	Event       string
	Payload     map[string]any
}

// Dispatcher decouples lifecycle operations from delivery latency.
// Same shape as the audit dispatcher: buffered queue, drop on full.
type Dispatcher struct {
	notifier Notifier
	log      *zap.Logger
	queue    chan Message
}

func NewDispatcher(notifier Notifier, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		notifier: notifier,
		log:      log,
		queue:    make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.notifier.Send(msg.RecipientID, msg.Event, msg.Payload); err != nil {
			d.log.Warn("notification delivery failed",
				zap.String("event", msg.Event),
				zap.Uint("recipient", msg.RecipientID),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Notify(recipientID uint, event string, payload map[string]any) {
	select {
	case d.queue <- Message{RecipientID: recipientID, Event: event, Payload: payload}:
	default:
		d.log.Warn("notification queue full, dropping event", zap.String("event", event))
	}
}

// LogNotifier stands in for the real delivery service in environments
// without one wired up.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(recipientID uint, event string, payload map[string]any) error {
	n.log.Info("notify",
		zap.Uint("recipient", recipientID),
		zap.String("event", event),
		zap.Any("payload", payload),
	)
	return nil
}
