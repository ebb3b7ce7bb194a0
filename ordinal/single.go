package ordinal

// NewSingleProcessIDState configures a generator for a node that owns its
// entire store alone: the worker id is fixed at 1 (8 worker bits from
// 10.0.0.0/24 and 10.0.0.1) and 16 bits are left for the sequence, which
// is all a non-sharded node needs for stamping its Cues.
func NewSingleProcessIDState() (*Generator, error) {
	return newGenerator(generatorConfig{
		CommitmentEpoch: 1,
		WorkerCIDR:      "10.0.0.0/24",
		PodIP:           "10.0.0.1",
		AllowSpins:      maxSpins,
	})
}
