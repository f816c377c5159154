package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMatcher(t *testing.T, policy TiePolicy) *Matcher {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return NewMatcher(c, policy)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("gulab jamun", "jamun"))
	assert.True(t, Contains("rice", "friedrice"))
	assert.True(t, Contains("egg", "egg"))
	assert.False(t, Contains("veg", "egg"))
	assert.False(t, Contains("", "egg"))
	assert.False(t, Contains("egg", ""))
}

func TestMatcher_Match(t *testing.T) {
	m := defaultMatcher(t, TieAll)

	testCases := []struct {
		name      string
		corrected []string
		want      []string
	}{
		{"highest score wins", []string{"chicken", "biryani"}, []string{"Chicken Biryani"}},
		{"ties return all in catalog order", []string{"paneer", "rice"}, []string{"Chicken Biryani", "Paneer Butter Masala", "Egg Fried Rice"}},
		{"single keyword", []string{"egg"}, []string{"Egg Fried Rice"}},
		{"keyword contains token", []string{"jamun"}, []string{"Gulab Jamun"}},
		{"token contains keyword", []string{"sweetness"}, []string{"Gulab Jamun"}},
		{"snack ties", []string{"snack"}, []string{"Egg Fried Rice", "Veg Sandwich"}},
		{"no match", []string{"xyzzyplonk"}, nil},
		{"no tokens", nil, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := m.Match(tc.corrected)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, names(got))
		})
	}
}

func TestMatcher_TieFirst(t *testing.T) {
	m := defaultMatcher(t, TieFirst)
	assert.Equal(t, []string{"Chicken Biryani"}, names(m.Match([]string{"paneer", "rice"})))
}

func TestMatcher_ScoresOnlyCountTokensOnce(t *testing.T) {
	m := defaultMatcher(t, TieAll)

	scores := m.Scores([]string{"gulab", "rice"})
	require.Len(t, scores, 5)

	got := map[string]int{}
	for _, s := range scores {
		got[s.Recipe.Name] = s.Score
	}
	// "gulab" hits both "gulab" and "gulab jamun" but counts once
	assert.Equal(t, 1, got["Gulab Jamun"])
	assert.Equal(t, 1, got["Chicken Biryani"])
	assert.Equal(t, 0, got["Veg Sandwich"])
}

func TestMatcher_MatchesAreUniformlyTopScored(t *testing.T) {
	m := defaultMatcher(t, TieAll)

	for _, tokens := range [][]string{
		{"chicken", "rice"},
		{"snack", "sandwich"},
		{"egg", "rice", "snack"},
		{"dessert", "paneer"},
	} {
		matched := m.Match(tokens)
		require.NotEmpty(t, matched, "%v", tokens)

		top := 0
		byName := map[string]int{}
		for _, s := range m.Scores(tokens) {
			byName[s.Recipe.Name] = s.Score
			if s.Score > top {
				top = s.Score
			}
		}
		for _, r := range matched {
			assert.Equal(t, top, byName[r.Name], "%v: %s", tokens, r.Name)
		}
	}
}

func TestParseTiePolicy(t *testing.T) {
	p, err := ParseTiePolicy("")
	require.NoError(t, err)
	assert.Equal(t, TieAll, p)

	p, err = ParseTiePolicy(" First ")
	require.NoError(t, err)
	assert.Equal(t, TieFirst, p)

	_, err = ParseTiePolicy("random")
	assert.Error(t, err)
}
