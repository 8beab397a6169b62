package extract

import (
	"fmt"

	"github.com/poiesic/sift/core"
)

const noiseLabel = -1

// dbscanLabels runs DBSCAN over unit vectors using cosine distance
// (1 - similarity). Labels are assigned in ascending point order so the
// output is deterministic for a given input. A point counts toward its own
// neighborhood, matching the usual minSamples convention.
func dbscanLabels(vectors [][]float32, eps float32, minSamples int) ([]int, error) {
	n := len(vectors)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = noiseLabel
	}

	neighbors := func(p int) ([]int, error) {
		result := make([]int, 0, n)
		for q := 0; q < n; q++ {
			sim, err := core.CosineSimilarity(vectors[p], vectors[q])
			if err != nil {
				return nil, fmt.Errorf("distance between points %d and %d: %w", p, q, err)
			}
			if 1-sim <= eps {
				result = append(result, q)
			}
		}
		return result, nil
	}

	visited := make([]bool, n)
	cluster := 0
	for p := 0; p < n; p++ {
		if visited[p] {
			continue
		}
		visited[p] = true

		seeds, err := neighbors(p)
		if err != nil {
			return nil, err
		}
		if len(seeds) < minSamples {
			continue
		}

		labels[p] = cluster
		for i := 0; i < len(seeds); i++ {
			q := seeds[i]
			if labels[q] == noiseLabel {
				labels[q] = cluster
			}
			if visited[q] {
				continue
			}
			visited[q] = true

			expansion, err := neighbors(q)
			if err != nil {
				return nil, err
			}
			if len(expansion) >= minSamples {
				seeds = append(seeds, expansion...)
			}
		}
		cluster++
	}
	return labels, nil
}

// selectTopCluster clusters the documents and returns the member indices of
// the largest cluster in ascending input order, capped at n. Ties between
// equally sized clusters resolve to the lowest label. When clustering cannot
// produce a cluster the caller falls back to ranked selection, signalled by
// the returned reason.
func (e *Extractor) selectTopCluster(vectors [][]float32, eps float32, minSamples, n int, monitor Monitor) ([]int, DegradeReason) {
	if len(vectors) < minSamples {
		return nil, DegradeTooFewForCluster
	}

	labels, err := dbscanLabels(vectors, eps, minSamples)
	if err != nil {
		e.logger.Warn("clustering failed", "error", err)
		return nil, DegradeClusterFailed
	}

	sizes := make(map[int]int)
	for _, label := range labels {
		if label != noiseLabel {
			sizes[label]++
		}
	}
	if len(sizes) == 0 {
		return nil, DegradeAllNoise
	}

	best, bestSize := -1, 0
	for label, size := range sizes {
		if size > bestSize || (size == bestSize && label < best) {
			best, bestSize = label, size
		}
	}
	monitor.ClusterSelected(best, bestSize)

	members := make([]int, 0, bestSize)
	for i, label := range labels {
		if label == best {
			members = append(members, i)
		}
	}
	if n < len(members) {
		members = members[:n]
	}
	return members, ""
}
