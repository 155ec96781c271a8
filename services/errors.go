// services/errors.go - Storage error taxonomy
package services

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Storage failures the read path recovers from locally. Both surface to the
// client as a successful-but-empty response with a message, never a 5xx: the
// achievements feature is additive and must not take the rest of the app down.
var (
	// ErrSchemaNotProvisioned means the achievement tables don't exist yet,
	// expected during phased rollout.
	ErrSchemaNotProvisioned = errors.New("achievement schema not provisioned")
	// ErrStorageUnavailable is a connection-level failure talking to Postgres.
	ErrStorageUnavailable = errors.New("achievement storage unavailable")
)

// Postgres SQLSTATE codes.
const (
	pgUndefinedTable  = "42P01"
	pgUndefinedColumn = "42703"
	pgConnectionClass = "08" // connection exception class prefix
)

// classifyStorageError maps driver errors into the taxonomy above. Anything it
// doesn't recognize passes through unchanged and propagates as a generic failure.
func classifyStorageError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUndefinedTable || pgErr.Code == pgUndefinedColumn:
			return fmt.Errorf("%w: %s", ErrSchemaNotProvisioned, pgErr.Message)
		case strings.HasPrefix(pgErr.Code, pgConnectionClass):
			return fmt.Errorf("%w: %s", ErrStorageUnavailable, pgErr.Message)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return err
}
