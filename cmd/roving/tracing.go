package main

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/odvcencio/roving/pkg/errors"
	"github.com/odvcencio/roving/pkg/roving"
)

const tracerName = "github.com/odvcencio/roving/pkg/roving"

// Span attribute keys for group transitions.
var (
	attrGroupID     = attribute.Key("roving.group.id")
	attrGroupName   = attribute.Key("roving.group.name")
	attrMember      = attribute.Key("roving.member")
	attrTabStop     = attribute.Key("roving.tab_stop")
	attrPrevTabStop = attribute.Key("roving.tab_stop.previous")
	attrActive      = attribute.Key("roving.active")
	attrMoved       = attribute.Key("roving.tab_stop.moved")
)

// newTracerProvider exports spans as JSON to path, or discards them when
// path is empty. The returned func closes the file.
func newTracerProvider(path string) (*sdktrace.TracerProvider, func() error, error) {
	var out io.Writer = io.Discard
	closeFn := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "open trace file").
				WithContext("path", path)
		}
		out = f
		closeFn = f.Close
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		_ = closeFn()
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create trace exporter")
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String("roving"),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		_ = closeFn()
		return nil, nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create trace resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	return tp, closeFn, nil
}

// spanObserver records every group transition as a zero-length span.
type spanObserver struct {
	tracer trace.Tracer
}

func newSpanObserver(tp trace.TracerProvider) *spanObserver {
	return &spanObserver{tracer: tp.Tracer(tracerName)}
}

func (o *spanObserver) ObserveTransition(t roving.Transition) {
	_, span := o.tracer.Start(context.Background(), "roving."+string(t.Kind),
		trace.WithAttributes(
			attrGroupID.String(t.GroupID),
			attrGroupName.String(t.Group),
			attrMember.String(string(t.Member)),
			attrTabStop.String(string(t.TabStop)),
			attrPrevTabStop.String(string(t.PrevTabStop)),
			attrActive.String(string(t.Active)),
			attrMoved.Bool(t.TabStopMoved()),
		),
	)
	span.End()
}
