package service

import (
	"context"
	"cudeca-ticket/common/errs"
	"cudeca-ticket/outbound/sqlgen"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/suite"
	"testing"
)

type InventoryLedgerTestSuite struct {
	suite.Suite

	Querier *sqlgen.Queries
	PgxMock pgxmock.PgxPoolIface
	ledger  InventoryLedger
}

func (s *InventoryLedgerTestSuite) SetupTest() {
	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Querier = sqlgen.New(pool)
}

func (s *InventoryLedgerTestSuite) TearDownTest() {
	s.PgxMock.Close()
}

func TestInventoryLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryLedgerTestSuite))
}

func (s *InventoryLedgerTestSuite) TestReserve() {
	testCases := []struct {
		name          string
		quantity      int32
		setupMock     func()
		expectedErr   error
		expectedStock int32
	}{
		{
			name:        "quantity below one",
			quantity:    0,
			setupMock:   func() {},
			expectedErr: errs.ErrInvalidRequest,
		},
		{
			name:     "reserved",
			quantity: 2,
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReserveEventStock :one").
					WithArgs(int32(2), int64(1)).
					WillReturnRows(eventRows(1, 8))
			},
			expectedStock: 8,
		},
		{
			name:     "exact remaining stock",
			quantity: 3,
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReserveEventStock :one").
					WithArgs(int32(3), int64(1)).
					WillReturnRows(eventRows(1, 0))
			},
			expectedStock: 0,
		},
		{
			name:     "insufficient stock",
			quantity: 2,
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReserveEventStock :one").
					WithArgs(int32(2), int64(1)).
					WillReturnError(pgx.ErrNoRows)
				s.PgxMock.ExpectQuery("name: GetEvent :one").
					WithArgs(int64(1)).
					WillReturnRows(eventRows(1, 1))
			},
			expectedErr: errs.ErrInsufficientStock,
		},
		{
			name:     "event not found",
			quantity: 1,
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReserveEventStock :one").
					WithArgs(int32(1), int64(1)).
					WillReturnError(pgx.ErrNoRows)
				s.PgxMock.ExpectQuery("name: GetEvent :one").
					WithArgs(int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: errs.ErrNotFound,
		},
		{
			name:     "update error",
			quantity: 1,
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReserveEventStock :one").
					WithArgs(int32(1), int64(1)).
					WillReturnError(fmt.Errorf("connection reset"))
			},
			expectedErr: errs.ErrStorageFailure,
		},
		{
			name:     "probe error",
			quantity: 1,
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReserveEventStock :one").
					WithArgs(int32(1), int64(1)).
					WillReturnError(pgx.ErrNoRows)
				s.PgxMock.ExpectQuery("name: GetEvent :one").
					WithArgs(int64(1)).
					WillReturnError(fmt.Errorf("connection reset"))
			},
			expectedErr: errs.ErrStorageFailure,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			event, err := s.ledger.Reserve(context.Background(), s.Querier, 1, tc.quantity)
			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
			} else {
				s.NoError(err)
				s.Equal(int64(1), event.ID)
				s.Equal(tc.expectedStock, event.Stock)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *InventoryLedgerTestSuite) TestRelease() {
	testCases := []struct {
		name        string
		setupMock   func()
		expectedErr error
	}{
		{
			name: "released",
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReleaseEventStock :one").
					WithArgs(int32(2), int64(1)).
					WillReturnRows(eventRows(1, 10))
			},
		},
		{
			name: "event not found",
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReleaseEventStock :one").
					WithArgs(int32(2), int64(1)).
					WillReturnError(pgx.ErrNoRows)
			},
			expectedErr: errs.ErrNotFound,
		},
		{
			name: "update error",
			setupMock: func() {
				s.PgxMock.ExpectQuery("name: ReleaseEventStock :one").
					WithArgs(int32(2), int64(1)).
					WillReturnError(fmt.Errorf("connection reset"))
			},
			expectedErr: errs.ErrStorageFailure,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tc.setupMock()

			event, err := s.ledger.Release(context.Background(), s.Querier, 1, 2)
			if tc.expectedErr != nil {
				s.ErrorIs(err, tc.expectedErr)
			} else {
				s.NoError(err)
				s.Equal(int32(10), event.Stock)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}
