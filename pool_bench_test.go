//go:build bench

package pitchdeck

import (
	"context"
	"fmt"
	"testing"
)

// BenchmarkResolvePoolSize benchmarks pool size calculation.
func BenchmarkResolvePoolSize(b *testing.B) {
	for _, w := range []int{0, 1, 2, 4, 8} {
		name := "auto"
		if w > 0 {
			name = fmt.Sprintf("%d", w)
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

// BenchmarkExporterPoolAcquireRelease benchmarks the acquire/release cycle
// with pre-created exporters. No browser is launched.
func BenchmarkExporterPoolAcquireRelease(b *testing.B) {
	for _, size := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			pool := NewExporterPool(size)
			defer pool.Close()

			ctx := context.Background()
			warm := make([]*Exporter, size)
			for i := range warm {
				e, err := pool.Acquire(ctx)
				if err != nil {
					b.Fatalf("Acquire() error = %v", err)
				}
				warm[i] = e
			}
			for _, e := range warm {
				pool.Release(e)
			}

			b.ReportAllocs()
			for b.Loop() {
				e, err := pool.Acquire(ctx)
				if err != nil {
					b.Fatalf("Acquire() error = %v", err)
				}
				pool.Release(e)
			}
		})
	}
}

// BenchmarkRenderDeck benchmarks rendering a full deck to surfaces.
func BenchmarkRenderDeck(b *testing.B) {
	r, err := NewRenderer()
	if err != nil {
		b.Fatalf("NewRenderer() error = %v", err)
	}
	deck := sampleDeck(SlideCount)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := r.RenderDeck(deck); err != nil {
			b.Fatal(err)
		}
	}
}
