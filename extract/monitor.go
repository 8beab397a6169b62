package extract

import "github.com/poiesic/sift/core"

// DegradeReason tags which documented fallback path an extraction took.
type DegradeReason string

const (
	// DegradeNoKeywords: the profile has no keywords; input passed through.
	DegradeNoKeywords DegradeReason = "no_keywords"

	// DegradeEncodeFailed: the embedding provider failed; input passed through.
	DegradeEncodeFailed DegradeReason = "encode_failed"

	// DegradeExclusionFailed: the exclusion filter could not run; input kept
	// unfiltered.
	DegradeExclusionFailed DegradeReason = "exclusion_failed"

	// DegradeTooFewForCluster: fewer documents than ClusterMinSamples; ranked
	// selection instead.
	DegradeTooFewForCluster DegradeReason = "too_few_for_cluster"

	// DegradeAllNoise: clustering assigned every document to noise; ranked
	// selection instead.
	DegradeAllNoise DegradeReason = "all_noise"

	// DegradeClusterFailed: the clustering computation failed; ranked
	// selection instead.
	DegradeClusterFailed DegradeReason = "cluster_failed"

	// DegradeBelowMinScore: no document cleared MinScore; all documents
	// ranked by raw score.
	DegradeBelowMinScore DegradeReason = "below_min_score"

	// DegradeUnexpected: an unanticipated failure; empty result returned.
	DegradeUnexpected DegradeReason = "unexpected"
)

// Monitor provides hooks to observe the extraction process.
// Implement this interface to track intermediate stages and fallbacks.
type Monitor interface {
	Start(docCount int)
	AfterEncode(embedded int)
	AfterExclusion(kept, removed int)
	AfterScoring(qualified, scored int)
	ClusterSelected(label, size int)
	Degraded(reason DegradeReason)
	Finish(selected []core.Document)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ int)              {}
func (n *noopMonitor) AfterEncode(_ int)        {}
func (n *noopMonitor) AfterExclusion(_, _ int)  {}
func (n *noopMonitor) AfterScoring(_, _ int)    {}
func (n *noopMonitor) ClusterSelected(_, _ int) {}
func (n *noopMonitor) Degraded(_ DegradeReason) {}
func (n *noopMonitor) Finish(_ []core.Document) {}
