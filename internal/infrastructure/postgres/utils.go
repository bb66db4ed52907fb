package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/inventario-lambdas/internal/domain"
)

// classify envuelve err con el sentinel de dominio que corresponde a su SQLSTATE.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if sentinel := sentinelFor(err); sentinel != nil {
		return fmt.Errorf("%s: %w: %w", op, sentinel, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func sentinelFor(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501", pgErr.Code == "28000", pgErr.Code == "28P01":
			return domain.ErrPermissionDenied
		case strings.HasPrefix(pgErr.Code, "08"), strings.HasPrefix(pgErr.Code, "57P"),
			pgErr.Code == "53300", pgErr.Code == "42P01":
			return domain.ErrStoreUnavailable
		case strings.HasPrefix(pgErr.Code, "22"):
			return domain.ErrMalformedInput
		}
		return nil
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return domain.ErrStoreUnavailable
	}
	return nil
}
