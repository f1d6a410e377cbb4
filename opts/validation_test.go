package opts

import (
	"testing"
)

func TestRequestValidation(t *testing.T) {
	valid := []Request{
		{Operation: OpRead, BDF: "01:00.0", Count: 1},
		{Operation: OpRead, BDF: "0000:01:00.0", Bar: 5, Count: MaxCount},
		{Operation: OpWrite, BDF: "01:00.0", Bar: 3},
	}

	invalid := []struct {
		req  Request
		want error
	}{
		{Request{Operation: OpRead, Count: 1}, ErrMissingBDF},
		{Request{BDF: "01:00.0"}, ErrMissingOperation},
		{Request{Operation: Operation(7), BDF: "01:00.0"}, ErrMissingOperation},
		{Request{Operation: OpRead, BDF: "01:00.0", Bar: 6, Count: 1}, ErrBarIndex},
		{Request{Operation: OpRead, BDF: "01:00.0", Bar: -1, Count: 1}, ErrBarIndex},
		{Request{Operation: OpRead, BDF: "01:00.0", Count: MaxCount + 1}, ErrCountTooLarge},
		{Request{Operation: OpRead, BDF: "01:00.0"}, ErrCountZero},
	}

	for _, req := range valid {
		req := req
		if err := RequestValidation().Validate(&req); err != nil {
			t.Errorf("%+v: unexpected error: %v", req, err)
		}
	}

	for _, tt := range invalid {
		tt := tt
		if err := RequestValidation().Validate(&tt.req); err != tt.want {
			t.Errorf("%+v: got %v, want %v", tt.req, err, tt.want)
		}
	}
}

func TestOperationString(t *testing.T) {
	for op, want := range map[Operation]string{
		OpUnset: "unset",
		OpRead:  "READ",
		OpWrite: "WRITE",
	} {
		if got := op.String(); got != want {
			t.Errorf("%d: got %q, want %q", op, got, want)
		}
	}
}
