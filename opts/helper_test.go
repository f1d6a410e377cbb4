package opts

import (
	"errors"
	"reflect"
	"testing"
)

func assert(t *testing.T, gotErr, wantErr error, got, want interface{}) {
	t.Helper()

	if wantErr != nil {
		if gotErr == nil {
			t.Fatal("expect an error")
		}

		if !errors.Is(gotErr, wantErr) {
			t.Fatalf("got %+v, want %+v", gotErr, wantErr)
		}
	} else if gotErr != nil {
		t.Fatalf("unexpected error: %v", gotErr)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
