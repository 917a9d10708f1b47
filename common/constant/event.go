package constant

const (
	QueueStreamName = "cudeca_ticket_queue_stream"
)

const (
	AllWildcard   = "events.>"
	OrderWildcard = "events.order.>"
	EmailWildcard = "events.email.>"

	SubjectOrderFulfilled = "events.order.fulfilled"
	SubjectOrderRefunded  = "events.order.refunded"
	SubjectSendEmail      = "events.email.send"
)
