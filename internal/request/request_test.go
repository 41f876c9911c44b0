package request

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/factorpad/internal/model"
)

func wetGrassStore() *model.Store {
	s := model.NewStore()
	for _, v := range []string{"rain", "sprinkler", "wet"} {
		s.AddVariable(v)
	}
	s.AddFactor("rain")
	s.SetFactorVariables("rain", []string{"rain"})
	s.AddFactor("sprinkler")
	s.SetFactorVariables("sprinkler", []string{"rain", "sprinkler"})
	s.AddFactor("wet")
	// head omitted on purpose; Build appends it
	s.SetFactorVariables("wet", []string{"rain", "sprinkler"})
	s.SetSampleValue("wet", true)
	s.SetSampleValue("sprinkler", false)
	s.SetResultSet([]string{"rain"})
	return s
}

func TestBuild_Golden(t *testing.T) {
	tests := []struct {
		name  string
		store *model.Store
		op    Op
	}{
		{name: "wet_grass_map", store: wetGrassStore(), op: OpMAP},
		{name: "empty_mpe", store: model.NewStore(), op: OpMPE},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Build(tt.store, tt.op).Encode()
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(text))
		})
	}
}

func TestBuild_Fields(t *testing.T) {
	doc := Build(wetGrassStore(), OpMAP)

	assert.Equal(t, []string{"rain", "sprinkler", "wet"}, doc.VarDb)
	require.Len(t, doc.FactorSet, 3)
	assert.Equal(t, []string{"rain", "sprinkler", "wet"}, doc.FactorSet[2].Vars)
	assert.Equal(t, []string{"wet"}, doc.FactorSet[2].Head)
	assert.Empty(t, doc.FactorSet[2].Vals)
	assert.Equal(t, []string{"rain"}, doc.QueryVarSet)
	require.NotNil(t, doc.SampleClause)
	assert.Equal(t, []string{"sprinkler", "wet"}, doc.SampleClause.VarSet)
	assert.Equal(t, []int{0, 1}, doc.SampleClause.Values)
}

func TestBuild_DoesNotAliasStore(t *testing.T) {
	s := wetGrassStore()
	doc := Build(s, OpMAP)
	doc.FactorSet[1].Vars[0] = "changed"
	doc.VarDb[0] = "changed"

	assert.Equal(t, []string{"rain", "sprinkler"}, s.FactorVariables("sprinkler"))
	assert.Equal(t, "rain", s.Variables()[0])
}

func TestEncode_IsValidJSON(t *testing.T) {
	text, err := Build(wetGrassStore(), OpMPE).Encode()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &raw))
	assert.Equal(t, "MPE", raw["op"])
	assert.Contains(t, raw, "VarDb")
	assert.Contains(t, raw, "FactorSet")
}

func TestDenseVals(t *testing.T) {
	assert.Equal(t, []float64{}, denseVals(nil))
	assert.Equal(t, []float64{0, 0.5, 0, 0.25}, denseVals(map[int]float64{1: 0.5, 3: 0.25}))
}

func TestParseOp(t *testing.T) {
	for in, want := range map[string]Op{"MAP": OpMAP, "map": OpMAP, " mpe ": OpMPE, "MPE": OpMPE} {
		got, err := ParseOp(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseOp("sum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported operation")
}
