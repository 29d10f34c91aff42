package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/dvf-estimator/internal/metrics"
	"github.com/donaldgifford/dvf-estimator/internal/notify"
	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
	"github.com/donaldgifford/dvf-estimator/pkg/valuation"
)

// Estimate values q against the corpus. A *valuation.RejectedError means no
// estimate is possible for the query; an error wrapping
// valuation.ErrDataSourceUnavailable means the corpus could not be read and
// the call may be retried.
func (eng *Engine) Estimate(ctx context.Context, q *domain.ValuationQuery) (*domain.Valuation, error) {
	ctx, span := eng.tracer.Start(ctx, "engine.Estimate", trace.WithAttributes(
		attribute.String("dvf.postal_code", q.PostalCode),
		attribute.String("dvf.property_kind", valuation.NormalizeKind(q.PropertyKind)),
		attribute.Float64("dvf.surface_m2", q.SurfaceM2),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.EstimateDuration.Observe(time.Since(start).Seconds())
	}()

	if err := valuation.ValidateQuery(q, eng.params); err != nil {
		eng.recordRejection(span, err)
		return nil, err
	}

	sales, err := eng.fetchCandidates(ctx, q)
	if err != nil {
		metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeError, "").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "data source unavailable")
		eng.log.Error("fetching candidate sales",
			"postal_code", q.PostalCode,
			"property_kind", q.PropertyKind,
			"error", err,
		)
		return nil, err
	}

	v, err := valuation.Estimate(sales, q, eng.params)
	if err != nil {
		eng.recordRejection(span, err)
		eng.log.Info("no estimate",
			"postal_code", q.PostalCode,
			"municipality", q.Municipality,
			"candidates", len(sales),
			"reason", valuation.RejectionReason(err),
		)
		return nil, err
	}

	metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeEstimated, "").Inc()
	metrics.ComparablesUsed.Observe(float64(v.ComparableCount))
	span.SetAttributes(
		attribute.Int("dvf.comparables", v.ComparableCount),
		attribute.Int64("dvf.estimated_price", v.EstimatedPrice),
	)
	eng.log.Info("estimate computed",
		"postal_code", q.PostalCode,
		"municipality", q.Municipality,
		"surface_m2", q.SurfaceM2,
		"comparables", v.ComparableCount,
		"price_per_m2", v.AveragePricePerM2,
		"estimated_price", v.EstimatedPrice,
	)
	return v, nil
}

func (eng *Engine) recordRejection(span trace.Span, err error) {
	reason := string(valuation.RejectionReason(err))
	metrics.EstimatesTotal.WithLabelValues(metrics.OutcomeNoEstimate, reason).Inc()
	span.SetAttributes(attribute.String("dvf.rejection_reason", reason))
}

type fetchResult struct {
	sales []domain.Sale
	err   error
}

// fetchCandidates reads the coarse candidate list, bounded by the fetch
// timeout even when the source ignores its context. Any failure is reported
// as ErrDataSourceUnavailable, never as an empty list.
func (eng *Engine) fetchCandidates(ctx context.Context, q *domain.ValuationQuery) ([]domain.Sale, error) {
	ctx, span := eng.tracer.Start(ctx, "engine.FindCandidateSales")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, eng.fetchTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.SourceFetchDuration.Observe(time.Since(start).Seconds())
	}()

	postalCode := strings.TrimSpace(q.PostalCode)
	kind := valuation.NormalizeKind(q.PropertyKind)

	done := make(chan fetchResult, 1)
	go func() {
		sales, err := eng.source.FindCandidateSales(ctx, postalCode, kind)
		done <- fetchResult{sales: sales, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		metrics.SourceFetchErrorsTotal.Inc()
		span.RecordError(res.err)
		span.SetStatus(codes.Error, res.err.Error())
		return nil, fmt.Errorf("%w: %w", valuation.ErrDataSourceUnavailable, res.err)
	}

	span.SetAttributes(attribute.Int("dvf.candidates", len(res.sales)))
	return res.sales, nil
}

// Submission is the outcome of an estimate submitted with contact details.
type Submission struct {
	LeadID   string
	Estimate *domain.Valuation
	Reason   valuation.Reason
}

// SubmitEstimate computes an estimate and forwards the lead to the
// notifiers. Leads are delivered whether or not an estimate was produced;
// notification failures are logged and never fail the submission. Data
// source failures are returned without notifying.
func (eng *Engine) SubmitEstimate(
	ctx context.Context,
	q *domain.ValuationQuery,
	lead *domain.Lead,
) (*Submission, error) {
	v, err := eng.Estimate(ctx, q)
	if err != nil && !valuation.IsNoEstimate(err) {
		return nil, err
	}

	sub := &Submission{
		LeadID:   uuid.NewString(),
		Estimate: v,
		Reason:   valuation.RejectionReason(err),
	}

	if lead == nil {
		return sub, nil
	}

	metrics.LeadsTotal.Inc()
	payload := &notify.LeadPayload{
		ID:          sub.LeadID,
		SubmittedAt: eng.now().UTC(),
		Lead:        *lead,
		Query:       q,
		Estimate:    v,
		Reason:      string(sub.Reason),
	}
	if nerr := eng.notifier.SendLead(ctx, payload); nerr != nil {
		eng.log.Error("lead notification failed", "lead_id", sub.LeadID, "error", nerr)
	}

	return sub, nil
}
