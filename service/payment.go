package service

import (
	"context"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/errs"
	"fmt"
	"strings"
)

// PaymentVerifier confirms that the external payment behind an order went through.
type PaymentVerifier interface {
	Verify(ctx context.Context, channel, token string) error
}

// TokenPresenceVerifier accepts any non-blank confirmation token for channels settled
// by an external provider. Cash is settled at the box office and carries no token.
type TokenPresenceVerifier struct{}

func (TokenPresenceVerifier) Verify(_ context.Context, channel, token string) error {
	switch channel {
	case constant.PaymentChannelCash:
		return nil
	case constant.PaymentChannelCard, constant.PaymentChannelTransfer:
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("%w: payment token is required for %s payments", errs.ErrInvalidRequest, channel)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown payment channel %q", errs.ErrInvalidRequest, channel)
	}
}
