package extract

// Default parameter values for extraction.
const (
	DefaultTopN               = 10
	DefaultMinScore           = 0.3
	DefaultExclusionThreshold = 0.6
	DefaultBatchSize          = 32
	DefaultClusterEps         = 0.3
	DefaultClusterMinSamples  = 3
)

// Params controls a single extraction call.
type Params struct {
	// TopN caps the number of returned documents.
	TopN int

	// MinScore is the weighted-similarity threshold a document must reach to
	// qualify for ranked selection. It is a preference, not a hard filter:
	// when no document qualifies, all documents are ranked by raw score
	// instead of returning nothing.
	MinScore float32

	// ExclusionThreshold drops a document when its best similarity to any
	// exclusion keyword strictly exceeds this value.
	ExclusionThreshold float32

	// BatchSize bounds how many documents are sent to the embedder per
	// request.
	BatchSize int

	// Cluster selects largest-cluster mode instead of ranked mode.
	Cluster bool

	// ClusterEps is the DBSCAN neighborhood radius in cosine distance.
	ClusterEps float32

	// ClusterMinSamples is the DBSCAN core-point density requirement. The
	// point itself counts toward its own neighborhood.
	ClusterMinSamples int
}

// DefaultParams returns the recommended extraction parameters.
func DefaultParams() Params {
	return Params{
		TopN:               DefaultTopN,
		MinScore:           DefaultMinScore,
		ExclusionThreshold: DefaultExclusionThreshold,
		BatchSize:          DefaultBatchSize,
		Cluster:            false,
		ClusterEps:         DefaultClusterEps,
		ClusterMinSamples:  DefaultClusterMinSamples,
	}
}

// withDefaults replaces nonsensical values so a zero Params still behaves.
// MinScore is left alone: zero is a legitimate threshold.
func (p Params) withDefaults() Params {
	if p.TopN <= 0 {
		p.TopN = DefaultTopN
	}
	if p.ExclusionThreshold <= 0 {
		p.ExclusionThreshold = DefaultExclusionThreshold
	}
	if p.BatchSize <= 0 {
		p.BatchSize = DefaultBatchSize
	}
	if p.ClusterEps <= 0 {
		p.ClusterEps = DefaultClusterEps
	}
	if p.ClusterMinSamples <= 0 {
		p.ClusterMinSamples = DefaultClusterMinSamples
	}
	return p
}
