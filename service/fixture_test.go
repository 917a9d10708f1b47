package service

import (
	"github.com/pashagolub/pgxmock/v4"
	"time"
)

var (
	accountCols     = []string{"tax_id", "first_name", "surname", "email", "phone", "newsletter", "role", "created_at"}
	eventCols       = []string{"id", "name", "event_type", "description", "starts_at", "location", "stock", "admin_tax_id", "created_at"}
	orderCols       = []string{"id", "buyer_tax_id", "created_at", "total_amount", "payment_channel", "payment_status", "consent", "payment_reference"}
	ticketCols      = []string{"id", "access_token", "used", "holder_name", "category", "order_id", "event_id", "validated_at"}
	certificateCols = []string{"id", "issued_at", "amount", "full_name", "tax_id", "address", "postal_code", "city", "region", "country", "order_id", "donation_id"}
	donationCols    = []string{"id", "buyer_tax_id", "amount", "payment_channel", "created_at"}
)

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func accountRows() *pgxmock.Rows {
	return pgxmock.NewRows(accountCols).
		AddRow("12345678Z", "Lucía", "García Pérez", "lucia@example.com", "+34600000000", false, "USER", fixedNow)
}

func eventRows(id int64, stock int32) *pgxmock.Rows {
	return pgxmock.NewRows(eventCols).
		AddRow(id, "Gala benéfica", "GALA", "Cena solidaria", fixedNow.Add(30*24*time.Hour), "Málaga", stock, "00000000T", fixedNow)
}

func orderRows(id int64, status string, amount int64, consent bool) *pgxmock.Rows {
	return pgxmock.NewRows(orderCols).
		AddRow(id, "12345678Z", fixedNow, amount, "CARD", status, consent, "tok_abc")
}

func ticketRow(rows *pgxmock.Rows, id int64, token string, orderID, eventID int64) *pgxmock.Rows {
	return rows.AddRow(id, token, false, "Lucía García Pérez", "General", orderID, eventID, nil)
}

func certificateRows(id int64, orderID any, donationID any) *pgxmock.Rows {
	return pgxmock.NewRows(certificateCols).
		AddRow(id, fixedNow, int64(5000), "Lucía García Pérez", "12345678Z", "Calle Mayor 1", "29001", "Málaga", "Andalucía", "España", orderID, donationID)
}

func donationRows(id int64) *pgxmock.Rows {
	return pgxmock.NewRows(donationCols).
		AddRow(id, "12345678Z", int64(2500), "TRANSFER", fixedNow)
}

// sequentialTokens returns a token source yielding the given tokens in order.
func sequentialTokens(tokens ...string) func() string {
	i := 0
	return func() string {
		token := tokens[i%len(tokens)]
		i++
		return token
	}
}
