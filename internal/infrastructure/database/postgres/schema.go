package postgres

import (
	"context"
	"fmt"
	"log/slog"
)

const createCustomerTable = `
CREATE TABLE IF NOT EXISTS customer (
    id    BIGSERIAL PRIMARY KEY,
    name  TEXT    NOT NULL,
    email TEXT    NOT NULL,
    age   INTEGER NOT NULL,
    CONSTRAINT customer_email_unique UNIQUE (email)
)`

// EnsureSchema creates the customer table when it does not exist yet.
func EnsureSchema(ctx context.Context, db DBPool, logger *slog.Logger) error {
	logger.InfoContext(ctx, "Ensuring customer schema exists")
	if _, err := db.Exec(ctx, createCustomerTable); err != nil {
		logger.ErrorContext(ctx, "Failed to create customer table", slog.Any("error", err))
		return fmt.Errorf("failed to create customer table: %w", err)
	}
	return nil
}
