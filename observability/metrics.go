package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics holds the instruments tracking authentication activity.
type AuthMetrics struct {
	registrations metric.Int64Counter
	logins        metric.Int64Counter
	tokenDuration metric.Float64Histogram
	tokenRejected metric.Int64Counter
}

// NewAuthMetrics creates the authentication instruments on the given meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	registrations, err := meter.Int64Counter("auth.registrations.total",
		metric.WithDescription("Total account registrations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.registrations.total: %w", err)
	}

	logins, err := meter.Int64Counter("auth.logins.total",
		metric.WithDescription("Total login attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.logins.total: %w", err)
	}

	tokenDuration, err := meter.Float64Histogram("auth.token.verify.duration",
		metric.WithDescription("Duration of token verification in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.token.verify.duration: %w", err)
	}

	tokenRejected, err := meter.Int64Counter("auth.token.rejected.total",
		metric.WithDescription("Total rejected tokens by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.token.rejected.total: %w", err)
	}

	return &AuthMetrics{
		registrations: registrations,
		logins:        logins,
		tokenDuration: tokenDuration,
		tokenRejected: tokenRejected,
	}, nil
}

// RecordRegistration counts a completed registration.
func (m *AuthMetrics) RecordRegistration(ctx context.Context) {
	m.registrations.Add(ctx, 1)
}

// RecordLogin counts a login attempt with its outcome ("ok" or "failed").
func (m *AuthMetrics) RecordLogin(ctx context.Context, outcome string) {
	m.logins.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

// RecordTokenVerification records how long a verification took.
func (m *AuthMetrics) RecordTokenVerification(ctx context.Context, duration time.Duration) {
	m.tokenDuration.Record(ctx, duration.Seconds())
}

// RecordTokenRejected counts a rejected token by reason ("expired", "invalid").
func (m *AuthMetrics) RecordTokenRejected(ctx context.Context, reason string) {
	m.tokenRejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
