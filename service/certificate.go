package service

import (
	"context"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/model"
	"cudeca-ticket/outbound/sqlgen"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"strings"
	"time"
)

var ErrMissingFiscalData = fmt.Errorf("%w: missing fiscal data", errs.ErrInvalidRequest)

// CertificateIssuer issues donation certificates. There is at most one per order and one per
// donation: an existing certificate is returned unchanged instead of issuing another.
type CertificateIssuer struct {
	TimeNow func() time.Time
}

func (in CertificateIssuer) IssueForOrder(
	ctx context.Context,
	q *sqlgen.Queries,
	order sqlgen.Order,
	buyer sqlgen.Account,
	amount int64,
	fiscal model.FiscalData,
) (sqlgen.Certificate, error) {
	if order.PaymentStatus != constant.PaymentStatusPaid {
		return sqlgen.Certificate{}, fmt.Errorf("%w: order %d is %s", errs.ErrInvalidState, order.ID, order.PaymentStatus)
	}

	orderID := pgtype.Int8{Int64: order.ID, Valid: true}
	existing, err := q.GetCertificateByOrderID(ctx, orderID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return sqlgen.Certificate{}, errs.Storage("get certificate by order", err)
	}

	params, err := in.resolveFiscal(buyer, amount, fiscal)
	if err != nil {
		return sqlgen.Certificate{}, err
	}
	params.OrderID = orderID

	certificate, err := q.InsertCertificate(ctx, params)
	if err != nil {
		return sqlgen.Certificate{}, errs.Storage("insert certificate", err)
	}

	return certificate, nil
}

func (in CertificateIssuer) IssueForDonation(
	ctx context.Context,
	q *sqlgen.Queries,
	donation sqlgen.Donation,
	buyer sqlgen.Account,
	fiscal model.FiscalData,
) (sqlgen.Certificate, error) {
	donationID := pgtype.Int8{Int64: donation.ID, Valid: true}
	existing, err := q.GetCertificateByDonationID(ctx, donationID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return sqlgen.Certificate{}, errs.Storage("get certificate by donation", err)
	}

	params, err := in.resolveFiscal(buyer, donation.Amount, fiscal)
	if err != nil {
		return sqlgen.Certificate{}, err
	}
	params.DonationID = donationID

	certificate, err := q.InsertCertificate(ctx, params)
	if err != nil {
		return sqlgen.Certificate{}, errs.Storage("insert certificate", err)
	}

	return certificate, nil
}

// resolveFiscal fills name and tax id from the buyer when the override leaves them blank.
func (in CertificateIssuer) resolveFiscal(buyer sqlgen.Account, amount int64, fiscal model.FiscalData) (sqlgen.InsertCertificateParams, error) {
	if missing := fiscal.MissingAddressFields(); len(missing) > 0 {
		return sqlgen.InsertCertificateParams{}, fmt.Errorf("%w: %s", ErrMissingFiscalData, strings.Join(missing, ", "))
	}

	taxID := strings.TrimSpace(fiscal.TaxID)
	if taxID == "" {
		taxID = buyer.TaxID
	}

	fullName := strings.TrimSpace(fiscal.FullName)
	if fullName == "" {
		fullName = displayName(buyer)
	}

	return sqlgen.InsertCertificateParams{
		IssuedAt:   pgtype.Timestamptz{Time: in.TimeNow(), Valid: true},
		Amount:     amount,
		FullName:   fullName,
		TaxID:      taxID,
		Address:    strings.TrimSpace(fiscal.Address),
		PostalCode: strings.TrimSpace(fiscal.PostalCode),
		City:       strings.TrimSpace(fiscal.City),
		Region:     strings.TrimSpace(fiscal.Region),
		Country:    strings.TrimSpace(fiscal.Country),
	}, nil
}
