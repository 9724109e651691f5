package paginator

const (
	// MaxLimit is the largest page size accepted. A zero limit means "all rows".
	MaxLimit = 1000
)
