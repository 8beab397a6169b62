package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/sift/core"
)

func TestScoreAndRank(t *testing.T) {
	e := testOnlyExtractor()
	e.priorityEmb = [][]float32{axisX}

	t.Run("best keyword similarity drives the score", func(t *testing.T) {
		multi := testOnlyExtractor()
		multi.priorityEmb = [][]float32{axisX, axisY}
		// near90 scores 0.9 against axisX; axisY scores 1.0 against the
		// second keyword even though it is orthogonal to the first.
		docs := textDocs("a", "b")
		indices := multi.scoreAndRank(docs, [][]float32{near90, axisY}, 0.3, 2, &noopMonitor{})
		assert.Equal(t, []int{1, 0}, indices)
	})

	t.Run("caps at n", func(t *testing.T) {
		docs := textDocs("a", "b", "c")
		indices := e.scoreAndRank(docs, [][]float32{near70, axisX, near90}, 0.3, 2, &noopMonitor{})
		assert.Equal(t, []int{1, 2}, indices)
	})

	t.Run("fallback ranks everything when nothing qualifies", func(t *testing.T) {
		docs := textDocs("a", "b")
		indices := e.scoreAndRank(docs, [][]float32{axisY, near60}, 1.9, 2, &noopMonitor{})
		assert.Equal(t, []int{1, 0}, indices)
	})

	t.Run("failed similarity drops only that document", func(t *testing.T) {
		docs := textDocs("a", "bad", "c")
		vectors := [][]float32{near90, {1, 0}, near70}
		indices := e.scoreAndRank(docs, vectors, 0.3, 3, &noopMonitor{})
		assert.Equal(t, []int{0, 2}, indices)
	})

	t.Run("empty candidate set yields empty ranking", func(t *testing.T) {
		indices := e.scoreAndRank(nil, nil, 0.3, 5, &noopMonitor{})
		assert.Empty(t, indices)
	})
}

func TestFilterExcluded(t *testing.T) {
	e := testOnlyExtractor()
	e.excludeEmb = [][]float32{axisY}

	docs := func(n int) []core.Document {
		out := make([]core.Document, n)
		for i := range out {
			out[i] = core.Document{Text: string(rune('a' + i))}
		}
		return out
	}

	t.Run("no exclusion keywords is a no-op", func(t *testing.T) {
		plain := testOnlyExtractor()
		d := docs(2)
		v := [][]float32{axisX, axisY}
		gotDocs, gotVecs := plain.filterExcluded(d, v, 0.6, &noopMonitor{})
		assert.Equal(t, d, gotDocs)
		assert.Equal(t, v, gotVecs)
	})

	t.Run("strictly above threshold is dropped", func(t *testing.T) {
		d := docs(3)
		// similarities to axisY: 0.0, 0.8, 0.6
		v := [][]float32{axisX, {0, 0.8, 0.6}, {0.8, 0.6, 0}}
		gotDocs, gotVecs := e.filterExcluded(d, v, 0.6, &noopMonitor{})
		assert.Equal(t, []core.Document{d[0], d[2]}, gotDocs)
		assert.Len(t, gotVecs, 2)
	})

	t.Run("similarity failure keeps the document", func(t *testing.T) {
		d := docs(2)
		v := [][]float32{{1, 0}, axisX}
		gotDocs, _ := e.filterExcluded(d, v, 0.6, &noopMonitor{})
		assert.Equal(t, d, gotDocs)
	})

	t.Run("length mismatch keeps everything and degrades", func(t *testing.T) {
		d := docs(3)
		v := [][]float32{axisX}
		var mon recordingMonitor
		gotDocs, gotVecs := e.filterExcluded(d, v, 0.6, &mon)
		assert.Equal(t, d, gotDocs)
		assert.Equal(t, v, gotVecs)
		assert.Contains(t, mon.reasons, DegradeExclusionFailed)
	})
}
