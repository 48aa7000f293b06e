package database

import (
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

// NewMockPool creates a pgxmock pool for repository tests. The returned
// pool satisfies DBTX. Call ExpectationsWereMet() at the end of each test.
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool()
}
