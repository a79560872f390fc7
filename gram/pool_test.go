package gram_test

import (
	"fmt"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"golang.org/x/sync/errgroup"

	"github.com/stewi1014/fidl/conformance"
	"github.com/stewi1014/fidl/gram"
	"github.com/stewi1014/fidl/wire"
	"github.com/stewi1014/fidl/wire/wiretest"
)

func TestPoolBuffersEmpty(t *testing.T) {
	var pool gram.Pool

	pool.WithCodingBuffers(func(bytes *[]byte, handles *[]wire.Handle) {
		td.CmpLen(t, *bytes, 0)
		td.CmpGte(t, cap(*bytes), gram.MinBufferSize)
		td.CmpLen(t, *handles, 0)

		*bytes = append(*bytes, 1, 2, 3)
		*handles = append(*handles, 4)
	})

	pool.WithCodingBuffers(func(bytes *[]byte, handles *[]wire.Handle) {
		td.CmpLen(t, *bytes, 0)
		td.CmpLen(t, *handles, 0)
		// stale contents are zeroed, not just truncated
		td.Cmp(t, (*bytes)[:3], []byte{0, 0, 0})
	})
}

func TestPoolStaleBuffer(t *testing.T) {
	var pool gram.Pool

	big := wire.String("a much longer string than the one that follows it")
	td.CmpNoError(t, pool.WithEncoded(&big, func([]byte, []wire.Handle) error { return nil }))

	table := wiretest.SimpleTable{Y: new(wire.Int64)}
	*table.Y = 67
	td.CmpNoError(t, pool.WithEncoded(&table, func(b []byte, handles []wire.Handle) error {
		td.Cmp(t, b, conformance.MustBytes("simple_table_y"))
		td.CmpEmpty(t, handles)
		return nil
	}))
}

func TestPoolError(t *testing.T) {
	wantErr := fmt.Errorf("sent nowhere")
	body := wire.Uint8(1)
	err := gram.WithEncoded(&body, func(b []byte, _ []wire.Handle) error {
		td.Cmp(t, b, conformance.MustBytes("uint8_default_context"))
		return wantErr
	})
	td.Cmp(t, err, wantErr)

	err = gram.WithEncoded(wiretest.Chain(40), func([]byte, []wire.Handle) error {
		t.Error("called with failed encoding")
		return nil
	})
	td.CmpError(t, err)
}

func TestPoolConcurrent(t *testing.T) {
	var pool gram.Pool
	var group errgroup.Group
	for i := 0; i < 16; i++ {
		i := i
		group.Go(func() error {
			for j := 0; j < 100; j++ {
				body := wire.Uint64(i*1000 + j)
				err := pool.WithEncoded(&body, func(b []byte, _ []wire.Handle) error {
					var out wire.Uint64
					if err := wire.Decode(b, nil, &out); err != nil {
						return err
					}
					if out != body {
						return fmt.Errorf("got %v, want %v", out, body)
					}
					return nil
				})
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	td.CmpNoError(t, group.Wait())
}

func BenchmarkPoolEncode(b *testing.B) {
	var pool gram.Pool
	body := wiretest.Foo{Byte: 1, Bignum: 2, Str: "benchmark"}
	for i := 0; i < b.N; i++ {
		_ = pool.WithEncoded(&body, func([]byte, []wire.Handle) error { return nil })
	}
}

func BenchmarkAllocateEncode(b *testing.B) {
	body := wiretest.Foo{Byte: 1, Bignum: 2, Str: "benchmark"}
	for i := 0; i < b.N; i++ {
		_, _, _ = wire.Marshal(&body)
	}
}
