package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrActionID     = "action.id"
	AttrActionTarget = "action.target"
	AttrRepoID       = "repo.id"
	AttrWorkspace    = "workspace.name"
	AttrErrorMessage = "error.message"
)

// SpanPrefixAction prefixes the span of every executed action.
const SpanPrefixAction = "action."

// StartAction starts the span for executing actionID. repoID is empty for
// actions without a repository.
func StartAction(ctx context.Context, tracer trace.Tracer, actionID, target, repoID string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrActionID, actionID),
		attribute.String(AttrActionTarget, target),
	}
	if repoID != "" {
		attrs = append(attrs, attribute.String(AttrRepoID, repoID))
	}
	return tracer.Start(ctx, SpanPrefixAction+actionID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err, if any, and ends span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
