package service

import (
	"context"
	"cudeca-ticket/common"
	"cudeca-ticket/common/constant"
	"cudeca-ticket/common/contract"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/common/otel"
	"cudeca-ticket/model"
	"cudeca-ticket/outbound/sqlgen"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"log/slog"
)

type DonationService struct {
	Db      contract.DbConn
	Querier *sqlgen.Queries

	Certificates CertificateIssuer
}

// IssueCertificate issues the certificate for a recorded donation, or returns the one
// already issued for it.
func (s DonationService) IssueCertificate(ctx context.Context, donationID int64, fiscal model.FiscalData) (resp model.CertificateResponse, err error) {
	ctx, span := otel.Tracer.Start(ctx, "DonationService.IssueCertificate")
	defer span.End()

	span.SetAttributes(attribute.Int64("donation.id", donationID))
	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	defer func() {
		if err != nil {
			common.UtilSpanError(span, err)
			slog.Log(ctx, logLevel(err), "donation certificate failed", traceIdAttr, slog.Int64("donation_id", donationID), slog.Any(constant.LogFieldErr, err))
		}
	}()

	tx, err := s.Db.Begin(ctx)
	if err != nil {
		err = errs.Storage("begin transaction", err)
		return model.CertificateResponse{}, err
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback transaction", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		}
	}()

	withTx := s.Querier.WithTx(tx)

	donation, err := withTx.GetDonationForUpdate(ctx, donationID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("%w: donation %d", errs.ErrNotFound, donationID)
		return model.CertificateResponse{}, err
	}
	if err != nil {
		err = errs.Storage("get donation", err)
		return model.CertificateResponse{}, err
	}

	buyer, err := withTx.GetAccount(ctx, donation.BuyerTaxID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("%w: donor %s", errs.ErrNotFound, donation.BuyerTaxID)
		return model.CertificateResponse{}, err
	}
	if err != nil {
		err = errs.Storage("get account", err)
		return model.CertificateResponse{}, err
	}

	certificate, err := s.Certificates.IssueForDonation(ctx, withTx, donation, buyer, fiscal)
	if err != nil {
		return model.CertificateResponse{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = errs.Storage("commit transaction", err)
		return model.CertificateResponse{}, err
	}

	slog.InfoContext(ctx, "donation certificate ready", traceIdAttr, slog.Int64("donation_id", donationID), slog.Int64("certificate_id", certificate.ID))

	return toCertificateResponse(certificate), nil
}
