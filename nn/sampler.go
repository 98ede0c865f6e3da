package nn

import "golang.org/x/exp/rand"

// sampler hands out fixed-size batches of training-set row indices. Each epoch
// starts from the full index range; batches are drawn without replacement from
// the shrinking pool, and when the pool runs short it is topped up with
// uniform draws (with replacement) over the whole range. With setSize an exact
// multiple of batchSize this partitions the set exactly once per epoch.
type sampler struct {
	setSize   int
	batchSize int
	pool      []int
	rng       *rand.Rand
}

func newSampler(setSize, batchSize int, rng *rand.Rand) *sampler {
	s := &sampler{setSize: setSize, batchSize: batchSize, rng: rng}
	s.reset()
	return s
}

// iterations is the batch count of one epoch.
func (s *sampler) iterations() int {
	return (s.setSize + s.batchSize - 1) / s.batchSize
}

// reset refills the pool with the full index range for a new epoch.
func (s *sampler) reset() {
	s.pool = s.pool[:0]
	for i := 0; i < s.setSize; i++ {
		s.pool = append(s.pool, i)
	}
}

// next draws one batch of indices. Replenishment can introduce values already
// present in the pool; removal strips every occurrence of a drawn value, so
// such coincidental duplicates disappear along with the draw.
func (s *sampler) next() []int {
	if len(s.pool) < s.batchSize {
		for i := len(s.pool); i < s.batchSize; i++ {
			s.pool = append(s.pool, s.rng.Intn(s.setSize))
		}
	}

	// Partial Fisher-Yates over a copy: uniform draw of batchSize pool
	// entries without replacement.
	tmp := append([]int(nil), s.pool...)
	batch := make([]int, s.batchSize)
	for k := range batch {
		j := k + s.rng.Intn(len(tmp)-k)
		tmp[k], tmp[j] = tmp[j], tmp[k]
		batch[k] = tmp[k]
	}

	drawn := make(map[int]bool, len(batch))
	for _, idx := range batch {
		drawn[idx] = true
	}
	kept := s.pool[:0]
	for _, idx := range s.pool {
		if !drawn[idx] {
			kept = append(kept, idx)
		}
	}
	s.pool = kept

	return batch
}
