package database

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "eduresource-api/pkg/database"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

var (
	commitCount, _ = meter.Int64Counter("db.commit.count",
		metric.WithDescription("Unit of work commits that staged at least one operation"),
		metric.WithUnit("{commit}"),
	)
	commitErrors, _ = meter.Int64Counter("db.commit.errors",
		metric.WithDescription("Commits rolled back because a statement failed"),
		metric.WithUnit("{error}"),
	)
	commitDuration, _ = meter.Float64Histogram("db.commit.duration",
		metric.WithDescription("Commit duration in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500),
	)
)
