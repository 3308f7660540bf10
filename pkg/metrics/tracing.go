package metrics

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// MethodTracer is a segment of the New Relic transaction carried by a
// context. A nil tracer is valid and records nothing, so callers never need
// to check whether tracing is enabled.
type MethodTracer struct {
	txn *newrelic.Transaction
	seg *newrelic.Segment
}

// TraceMethodCall starts a segment named "<structOrPackageName> <methodName>"
// in ctx's transaction, if any
func TraceMethodCall(ctx context.Context, structOrPackageName, methodName string) *MethodTracer {
	txn := newrelic.FromContext(ctx)
	if txn == nil {
		return nil
	}

	return &MethodTracer{
		txn: txn,
		seg: txn.StartSegment(structOrPackageName + " " + methodName),
	}
}

func (t *MethodTracer) AddAttribute(key string, value interface{}) {
	if t != nil {
		t.seg.AddAttribute(key, value)
	}
}

func (t *MethodTracer) AddAttributes(attributes map[string]interface{}) {
	for key, value := range attributes {
		t.AddAttribute(key, value)
	}
}

// OnError notices err on the enclosing transaction
func (t *MethodTracer) OnError(err error) {
	if t != nil && err != nil {
		t.txn.NoticeError(err)
	}
}

func (t *MethodTracer) End() {
	if t != nil {
		t.seg.End()
	}
}
