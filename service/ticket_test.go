package service

import (
	"context"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/outbound/sqlgen"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
	"testing"
	"time"
)

type TicketIssuerTestSuite struct {
	suite.Suite

	Querier *sqlgen.Queries
	PgxMock pgxmock.PgxPoolIface
}

func (s *TicketIssuerTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Querier = sqlgen.New(pool)
}

func (s *TicketIssuerTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestTicketIssuerTestSuite(t *testing.T) {
	suite.Run(t, new(TicketIssuerTestSuite))
}

func (s *TicketIssuerTestSuite) TestIssue() {
	order := sqlgen.Order{ID: 7, BuyerTaxID: "12345678Z", PaymentStatus: "PAID"}

	testCases := []struct {
		name          string
		quantity      int32
		category      string
		issuer        TicketIssuer
		setupMock     func()
		expectedErr   error
		expectedCount int
	}{
		{
			name:        "quantity below one",
			quantity:    0,
			issuer:      TicketIssuer{NewToken: sequentialTokens("a")},
			setupMock:   func() {},
			expectedErr: errs.ErrInvalidRequest,
		},
		{
			name:     "single batch",
			quantity: 3,
			category: "VIP",
			issuer:   TicketIssuer{NewToken: sequentialTokens("t1", "t2", "t3"), MaxAttempts: 3},
			setupMock: func() {
				rows := pgxmock.NewRows(ticketCols)
				rows = ticketRow(rows, 1, "t1", 7, 1)
				rows = ticketRow(rows, 2, "t2", 7, 1)
				rows = ticketRow(rows, 3, "t3", 7, 1)
				s.PgxMock.ExpectQuery("name: InsertTickets :many").
					WithArgs([]string{"t1", "t2", "t3"}, "Lucía García Pérez", "VIP", int64(7), int64(1)).
					WillReturnRows(rows)
			},
			expectedCount: 3,
		},
		{
			name:     "colliding token is minted again",
			quantity: 3,
			issuer:   TicketIssuer{NewToken: sequentialTokens("t1", "dup", "t3", "t4"), MaxAttempts: 3},
			setupMock: func() {
				first := pgxmock.NewRows(ticketCols)
				first = ticketRow(first, 1, "t1", 7, 1)
				first = ticketRow(first, 3, "t3", 7, 1)
				s.PgxMock.ExpectQuery("name: InsertTickets :many").
					WithArgs([]string{"t1", "dup", "t3"}, "Lucía García Pérez", "General", int64(7), int64(1)).
					WillReturnRows(first)

				second := ticketRow(pgxmock.NewRows(ticketCols), 4, "t4", 7, 1)
				s.PgxMock.ExpectQuery("name: InsertTickets :many").
					WithArgs([]string{"t4"}, "Lucía García Pérez", "General", int64(7), int64(1)).
					WillReturnRows(second)
			},
			expectedCount: 3,
		},
		{
			name:     "collisions exhaust attempts",
			quantity: 1,
			issuer:   TicketIssuer{NewToken: sequentialTokens("dup"), MaxAttempts: 2},
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: InsertTickets :many").
					WithArgs([]string{"dup"}, "Lucía García Pérez", "General", int64(7), int64(1)).
					WillReturnRows(pgxmock.NewRows(ticketCols))
				s.PgxMock.ExpectQuery("name: InsertTickets :many").
					WithArgs([]string{"dup"}, "Lucía García Pérez", "General", int64(7), int64(1)).
					WillReturnRows(pgxmock.NewRows(ticketCols))
			},
			expectedErr: errs.ErrStorageFailure,
		},
		{
			name:     "insert error",
			quantity: 1,
			issuer:   TicketIssuer{NewToken: sequentialTokens("t1")},
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: InsertTickets :many").
					WithArgs([]string{"t1"}, "Lucía García Pérez", "General", int64(7), int64(1)).
					WillReturnError(fmt.Errorf("connection reset"))
			},
			expectedErr: errs.ErrStorageFailure,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			tickets, err := tc.issuer.Issue(context.Background(), s.Querier, order, 1, tc.quantity, "Lucía García Pérez", tc.category)
			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
			} else {
				s.NoError(err)
				s.Len(tickets, tc.expectedCount)

				seen := make(map[string]bool)
				for _, ticket := range tickets {
					s.False(ticket.Used)
					s.Equal(int64(7), ticket.OrderID)
					s.Equal(int64(1), ticket.EventID)
					s.False(seen[ticket.AccessToken], "duplicate token %s", ticket.AccessToken)
					seen[ticket.AccessToken] = true
				}
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *TicketIssuerTestSuite) TestNewTicketIssuerMintsDistinctTokens() {
	issuer := NewTicketIssuer(0)

	seen := make(map[string]bool)
	for range 100 {
		token := issuer.NewToken()
		s.Len(token, 36)
		s.False(seen[token])
		seen[token] = true
	}
}

func (s *TicketIssuerTestSuite) TestRedeem() {
	validatedAt := pgtype.Timestamptz{Time: fixedNow, Valid: true}

	testCases := []struct {
		name        string
		token       string
		setupMock   func()
		expectedErr error
	}{
		{
			name:        "blank token",
			token:       " ",
			setupMock:   func() {},
			expectedErr: errs.ErrInvalidRequest,
		},
		{
			name:  "redeemed",
			token: "t1",
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: RedeemTicket :one").
					WithArgs("t1", validatedAt).
					WillReturnRows(pgxmock.NewRows(ticketCols).
						AddRow(int64(1), "t1", true, "Lucía García Pérez", "General", int64(7), int64(1), fixedNow))
			},
		},
		{
			name:  "already used",
			token: "t1",
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: RedeemTicket :one").
					WithArgs("t1", validatedAt).
					WillReturnError(pgx.ErrNoRows)
				s.PgxMock.ExpectQuery("name: GetTicketByAccessToken :one").
					WithArgs("t1").
					WillReturnRows(pgxmock.NewRows(ticketCols).
						AddRow(int64(1), "t1", true, "Lucía García Pérez", "General", int64(7), int64(1), fixedNow.Add(-time.Hour)))
			},
			expectedErr: errs.ErrInvalidState,
		},
		{
			name:  "unknown token",
			token: "nope",
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: RedeemTicket :one").
					WithArgs("nope", validatedAt).
					WillReturnError(pgx.ErrNoRows)
				s.PgxMock.ExpectQuery("name: GetTicketByAccessToken :one").
					WithArgs("nope").
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: errs.ErrNotFound,
		},
		{
			name:  "update error",
			token: "t1",
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: RedeemTicket :one").
					WithArgs("t1", validatedAt).
					WillReturnError(fmt.Errorf("connection reset"))
			},
			expectedErr: errs.ErrStorageFailure,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			svc := TicketService{Querier: s.Querier, TimeNow: func() time.Time { return fixedNow }}
			ticket, err := svc.Redeem(context.Background(), tc.token)
			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
			} else {
				s.NoError(err)
				s.True(ticket.Used)
				s.Require().NotNil(ticket.ValidatedAt)
				s.True(fixedNow.Equal(*ticket.ValidatedAt))
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}
