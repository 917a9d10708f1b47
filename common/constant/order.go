package constant

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

const (
	PaymentChannelCard     = "CARD"
	PaymentChannelTransfer = "TRANSFER"
	PaymentChannelCash     = "CASH"
)

const (
	RoleUser          = "USER"
	RoleMember        = "MEMBER"
	RoleAdministrator = "ADMINISTRATOR"
)

const DefaultTicketCategory = "General"

// Fulfillment states, in the order a successful purchase walks through them.
const (
	FulfillmentStarted           = "STARTED"
	FulfillmentStockReserved     = "STOCK_RESERVED"
	FulfillmentOrderCreated      = "ORDER_CREATED"
	FulfillmentTicketsIssued     = "TICKETS_ISSUED"
	FulfillmentCertificateIssued = "CERTIFICATE_ISSUED"
	FulfillmentCompleted         = "COMPLETED"
	FulfillmentFailed            = "FAILED"
)
