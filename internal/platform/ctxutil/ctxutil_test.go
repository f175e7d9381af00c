package ctxutil

import (
	"context"
	"testing"
)

func TestRequestDataRoundTrip(t *testing.T) {
	ctx := WithRequestData(context.Background(), &RequestData{SubjectID: 7, Role: RoleUser})
	rd := GetRequestData(ctx)
	if rd == nil || rd.SubjectID != 7 || !rd.IsUser() || rd.IsAdmin() {
		t.Fatalf("unexpected request data: %+v", rd)
	}
	if GetRequestData(context.Background()) != nil {
		t.Fatalf("expected nil request data on bare context")
	}
	var nilRD *RequestData
	if nilRD.IsAdmin() || nilRD.IsUser() {
		t.Fatalf("nil request data must not carry a role")
	}
}

func TestTraceDataNilContext(t *testing.T) {
	//nolint:staticcheck
	ctx := WithTraceData(nil, &TraceData{TraceID: "abc"})
	if td := GetTraceData(ctx); td == nil || td.TraceID != "abc" {
		t.Fatalf("trace data not attached: %+v", td)
	}
}
