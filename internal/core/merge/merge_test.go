package merge

import (
	"testing"

	"namematch/internal/core/extract"
	"namematch/internal/core/match"
	"namematch/internal/core/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func details(t *testing.T) *registry.DetailTable {
	t.Helper()
	d, err := registry.BuildDetails("CustomerName",
		[]string{"CustomerName", "Email", "Phone"},
		[][]string{
			{"John Smith", "john@example.com", "555-0100"},
			{"JANE DOE", "jane@example.com"},
		})
	require.NoError(t, err)
	return d
}

func result(cand, best string, pos int, score float64, ok bool) match.Result {
	return match.Result{
		Candidate: extract.Candidate{Name: cand},
		Best:      registry.Entry{Name: best, Pos: pos},
		HasBest:   true,
		Score:     score,
		Accepted:  ok,
	}
}

func TestMerge_AcceptedOnlyWithDetails(t *testing.T) {
	in := []match.Result{
		result("JOHN SMITH", "John Smith", 0, 100, true),
		result("Peter Parker", "Jane Doe", 1, 30, false),
		result("Jane Do", "Jane Doe", 1, 93.33, true),
	}
	d := details(t)
	out := Merge(in, d)
	require.Len(t, out, 2)

	assert.Equal(t, "JOHN SMITH", out[0].Match.Candidate.Name)
	assert.True(t, out[0].HasDetail)
	assert.Equal(t, []string{"john@example.com", "555-0100"}, out[0].Values(d.Columns()))

	assert.True(t, out[1].HasDetail, "key join ignores case")
	assert.Equal(t, []string{"jane@example.com", ""}, out[1].Values(d.Columns()))
}

func TestMerge_MissingDetailIsKept(t *testing.T) {
	in := []match.Result{result("Wei Zhang", "Wei Zhang", 0, 100, true)}
	out := Merge(in, details(t))
	require.Len(t, out, 1)
	assert.False(t, out[0].HasDetail)
	assert.Equal(t, []string{"", ""}, out[0].Values([]string{"Email", "Phone"}))
	assert.Equal(t, 1, Missing(out))
}

func TestMerge_NilDetails(t *testing.T) {
	in := []match.Result{result("John Smith", "John Smith", 0, 100, true)}
	out := Merge(in, nil)
	require.Len(t, out, 1)
	assert.False(t, out[0].HasDetail)
}

func TestMerge_EmptyIsNotNil(t *testing.T) {
	out := Merge(nil, details(t))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestMerge_KeepsDuplicatesByDefault(t *testing.T) {
	in := []match.Result{
		result("Jon Smyth", "John Smith", 0, 84.21, true),
		result("JOHN SMITH", "John Smith", 0, 100, true),
	}
	out := Merge(in, details(t))
	assert.Len(t, out, 2)
	assert.Equal(t, "Jon Smyth", out[0].Match.Candidate.Name)
}

func TestMerge_OnePerCustomer(t *testing.T) {
	in := []match.Result{
		result("Jon Smyth", "John Smith", 0, 84.21, true),
		result("Jane Do", "Jane Doe", 1, 93.33, true),
		result("JOHN SMITH", "John Smith", 0, 100, true),
		result("Jan Doe", "Jane Doe", 1, 93.33, true),
	}
	out := MergeWith(in, details(t), Options{OnePerCustomer: true})
	require.Len(t, out, 2)
	assert.Equal(t, "JOHN SMITH", out[0].Match.Candidate.Name)
	assert.Equal(t, "Jan Doe", out[1].Match.Candidate.Name, "ties fall back to candidate name")
	assert.Equal(t, "Jon Smyth", in[0].Candidate.Name, "input untouched")
}
