package service

import (
	"cudeca-ticket/model"
	"cudeca-ticket/outbound/sqlgen"
)

func displayName(a sqlgen.Account) string {
	return model.DisplayName(a.FirstName, a.Surname)
}

func toOrderResponse(order sqlgen.Order, tickets []sqlgen.Ticket, certificate *sqlgen.Certificate) model.OrderResponse {
	resp := model.OrderResponse{
		ID:               order.ID,
		BuyerTaxID:       order.BuyerTaxID,
		CreatedAt:        order.CreatedAt.Time,
		TotalAmount:      order.TotalAmount,
		PaymentChannel:   order.PaymentChannel,
		PaymentStatus:    order.PaymentStatus,
		Consent:          order.Consent,
		PaymentReference: order.PaymentReference,
		Tickets:          make([]model.TicketResponse, 0, len(tickets)),
	}

	for _, ticket := range tickets {
		resp.Tickets = append(resp.Tickets, toTicketResponse(ticket))
	}

	if certificate != nil {
		c := toCertificateResponse(*certificate)
		resp.Certificate = &c
	}

	return resp
}

func toTicketResponse(t sqlgen.Ticket) model.TicketResponse {
	resp := model.TicketResponse{
		ID:          t.ID,
		AccessToken: t.AccessToken,
		Used:        t.Used,
		HolderName:  t.HolderName,
		Category:    t.Category,
		OrderID:     t.OrderID,
		EventID:     t.EventID,
	}

	if t.ValidatedAt.Valid {
		validatedAt := t.ValidatedAt.Time
		resp.ValidatedAt = &validatedAt
	}

	return resp
}

func toCertificateResponse(c sqlgen.Certificate) model.CertificateResponse {
	resp := model.CertificateResponse{
		ID:         c.ID,
		IssuedAt:   c.IssuedAt.Time,
		Amount:     c.Amount,
		FullName:   c.FullName,
		TaxID:      c.TaxID,
		Address:    c.Address,
		PostalCode: c.PostalCode,
		City:       c.City,
		Region:     c.Region,
		Country:    c.Country,
	}

	if c.OrderID.Valid {
		orderID := c.OrderID.Int64
		resp.OrderID = &orderID
	}

	if c.DonationID.Valid {
		donationID := c.DonationID.Int64
		resp.DonationID = &donationID
	}

	return resp
}
