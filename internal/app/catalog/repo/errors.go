package repo

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/logger"
)

// queryError converts a store failure into a QueryExecutionError and logs the
// statement text. The statement never leaves the process.
func queryError(ctx context.Context, backend, op, sql string, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return err
	}
	var qerr *domain.QueryExecutionError
	if errors.As(err, &qerr) {
		return err
	}

	timeout := isTimeout(err)
	logger.FromContext(ctx).Error("catalog query failed",
		zap.String("backend", backend),
		zap.String("op", op),
		zap.String("sql", sql),
		zap.Bool("timeout", timeout),
		zap.Error(err),
	)
	return domain.NewQueryExecutionError(op, timeout, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if spanner.ErrCode(err) == codes.DeadlineExceeded {
		return true
	}
	return pgconn.Timeout(err)
}
