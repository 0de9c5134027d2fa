package repo

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/light-bringer/storefront-catalog/internal/app/catalog/contracts"
	"github.com/light-bringer/storefront-catalog/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-catalog/internal/metrics"
)

const tracerName = "github.com/light-bringer/storefront-catalog/internal/app/catalog/repo"

// InstrumentedReadModel decorates a ReadModel with a per-call timeout, a
// trace span and query metrics.
type InstrumentedReadModel struct {
	next    contracts.ReadModel
	backend string
	timeout time.Duration
	tracer  trace.Tracer
}

// NewInstrumentedReadModel wraps next. A non-positive timeout disables the deadline.
func NewInstrumentedReadModel(next contracts.ReadModel, backend string, timeout time.Duration) contracts.ReadModel {
	return &InstrumentedReadModel{
		next:    next,
		backend: backend,
		timeout: timeout,
		tracer:  otel.Tracer(tracerName),
	}
}

// Search runs the listing read.
func (rm *InstrumentedReadModel) Search(ctx context.Context, req *contracts.SearchRequest) (*contracts.SearchResult, error) {
	var result *contracts.SearchResult
	err := rm.observe(ctx, "search", func(ctx context.Context) error {
		var err error
		result, err = rm.next.Search(ctx, req)
		return err
	}, attribute.Int64("catalog.limit", req.Limit), attribute.Int64("catalog.offset", req.Offset))
	if err != nil {
		return nil, err
	}
	metrics.ObserveRows(rm.backend, len(result.Products))
	return result, nil
}

// FacetRows runs the facet scan.
func (rm *InstrumentedReadModel) FacetRows(ctx context.Context, category string, fn func(contracts.FacetRow)) error {
	return rm.observe(ctx, "facets", func(ctx context.Context) error {
		return rm.next.FacetRows(ctx, category, fn)
	}, attribute.String("catalog.category", category))
}

// GetByURL runs the product detail read.
func (rm *InstrumentedReadModel) GetByURL(ctx context.Context, category, productURL string) (*contracts.ProductDTO, error) {
	var dto *contracts.ProductDTO
	err := rm.observe(ctx, "get_by_url", func(ctx context.Context) error {
		var err error
		dto, err = rm.next.GetByURL(ctx, category, productURL)
		return err
	}, attribute.String("catalog.category", category))
	return dto, err
}

// Ping checks the store.
func (rm *InstrumentedReadModel) Ping(ctx context.Context) error {
	return rm.observe(ctx, "ping", rm.next.Ping)
}

func (rm *InstrumentedReadModel) observe(ctx context.Context, op string, fn func(context.Context) error, attrs ...attribute.KeyValue) error {
	if rm.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rm.timeout)
		defer cancel()
	}

	attrs = append(attrs, attribute.String("db.system", rm.backend))
	ctx, span := rm.tracer.Start(ctx, "catalog."+op, trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.ObserveQuery(rm.backend, op, outcome(err), time.Since(start))

	if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "catalog query failed")
	}
	return err
}

func outcome(err error) string {
	var qerr *domain.QueryExecutionError
	switch {
	case err == nil, errors.Is(err, domain.ErrProductNotFound):
		return metrics.OutcomeOK
	case errors.As(err, &qerr) && qerr.Timeout:
		return metrics.OutcomeTimeout
	default:
		return metrics.OutcomeError
	}
}
