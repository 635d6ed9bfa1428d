package fluid

import "sync"

var scratchPool = sync.Pool{New: func() any { return new([]float32) }}

// withScratch lends fn a zeroed host buffer of n floats. The buffer returns
// to the pool when fn returns, whichever path it takes.
func withScratch(n int, fn func(buf []float32) error) error {
	p := scratchPool.Get().(*[]float32)
	defer scratchPool.Put(p)
	if cap(*p) < n {
		*p = make([]float32, n)
	}
	buf := (*p)[:n]
	clear(buf)
	return fn(buf)
}
