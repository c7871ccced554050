package ntt

import (
	"runtime"
	"sync"
)

// ConvolveBatch computes the negacyclic convolution of each pair
// p0s[i], p1s[i], spreading the work over multiple cores.
func (tr *Transformer) ConvolveBatch(p0s, p1s []Poly) []Poly {
	if len(p0s) != len(p1s) {
		panic("batch size mismatch")
	}

	pOuts := make([]Poly, len(p0s))
	for i := range pOuts {
		pOuts[i] = NewPoly(tr.params.n)
	}
	tr.ConvolveBatchAssign(p0s, p1s, pOuts)

	return pOuts
}

// ConvolveBatchAssign computes the negacyclic convolution of each pair
// p0s[i], p1s[i] and writes it to pOuts[i], spreading the work over
// multiple cores.
func (tr *Transformer) ConvolveBatchAssign(p0s, p1s, pOuts []Poly) {
	if len(p0s) != len(p1s) || len(p0s) != len(pOuts) {
		panic("batch size mismatch")
	}

	workSize := min(runtime.NumCPU(), len(p0s))

	transformerPool := make([]*Transformer, workSize)
	for i := 0; i < workSize; i++ {
		transformerPool[i] = tr.ShallowCopy()
	}

	convolveJobChan := make(chan int)
	go func() {
		defer close(convolveJobChan)
		for i := range p0s {
			convolveJobChan <- i
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workSize)

	for i := 0; i < workSize; i++ {
		go func(idx int) {
			defer wg.Done()

			transformer := transformerPool[idx]
			for job := range convolveJobChan {
				transformer.ConvolveAssign(p0s[job], p1s[job], pOuts[job])
			}
		}(i)
	}
	wg.Wait()
}
