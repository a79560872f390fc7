package wire_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/fidl/wire"
)

// identity encodes v, decodes the result into a new T, and checks it equals v.
// Nil and empty slices are considered equal.
func identity[T any, P wire.PayloadPtr[T]](t *testing.T, v T) {
	t.Helper()

	in := v
	b, handles, err := wire.Marshal(P(&in))
	if !td.CmpNoError(t, err, "encoding") {
		return
	}

	var out T
	if !td.CmpNoError(t, wire.Unmarshal(b, handles, P(&out)), "decoding") {
		return
	}
	if diff := cmp.Diff(v, out, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("decoded value differs (-want +got):\n%v", diff)
	}
}

// encodeAssertBytes checks v encodes to want, and that want decodes and re-encodes to itself.
func encodeAssertBytes[T any, P wire.PayloadPtr[T]](t *testing.T, v T, want []byte) {
	t.Helper()

	b, handles, err := wire.Marshal(P(&v))
	if !td.CmpNoError(t, err, "encoding") {
		return
	}
	td.CmpEmpty(t, handles)
	td.Cmp(t, b, want)

	var out T
	if !td.CmpNoError(t, wire.Unmarshal(want, nil, P(&out)), "decoding") {
		return
	}
	again, _, err := wire.Marshal(P(&out))
	td.CmpNoError(t, err, "re-encoding")
	td.Cmp(t, again, want)
}

// decodeErr decodes b into a new T, and checks it fails with want.
func decodeErr[T any, P wire.PayloadPtr[T]](t *testing.T, b []byte, handles []wire.Handle, want error) {
	t.Helper()

	var out T
	err := wire.Unmarshal(b, handles, P(&out))
	if !errors.Is(err, want) {
		t.Errorf("got error %v, want %v", err, want)
	}
}

// words joins 8 byte little-endian words.
func words(ws ...uint64) []byte {
	b := make([]byte, 0, len(ws)*8)
	for _, w := range ws {
		for i := 0; i < 8; i++ {
			b = append(b, byte(w>>(8*i)))
		}
	}
	return b
}

const (
	present = ^uint64(0)
	absent  = uint64(0)
)
