package constant

import "time"

const (
	EachEventStockKey    = "event:%d:stock"
	OrderPaymentTokenKey = "order:payment_token:%s"
)

const (
	OrderPaymentTokenDefaultTTL = 24 * time.Hour
)
