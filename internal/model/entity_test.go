package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	for _, s := range []string{"low", "Medium", "HIGH", " high "} {
		p, ok := ParsePriority(s)
		assert.True(t, ok, s)
		assert.True(t, p.Valid(), s)
	}

	for _, s := range []string{"", "urgent", "lowest"} {
		_, ok := ParsePriority(s)
		assert.False(t, ok, s)
	}
}

func TestDateOnly_JSONRoundTrip(t *testing.T) {
	d, err := ParseDateOnly("1990-05-20")
	require.NoError(t, err)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"1990-05-20"`, string(data))

	var back DateOnly
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d.String(), back.String())
}

func TestDateOnly_RejectsMalformed(t *testing.T) {
	var d DateOnly
	for _, raw := range []string{`"20-05-1990"`, `"1990-13-01"`, `"yesterday"`, `42`} {
		assert.Error(t, json.Unmarshal([]byte(raw), &d), raw)
	}
}

func TestTimeOnly_JSONRoundTrip(t *testing.T) {
	tm, err := ParseTimeOnly("07:30:00")
	require.NoError(t, err)

	data, err := json.Marshal(tm)
	require.NoError(t, err)
	assert.Equal(t, `"07:30:00"`, string(data))

	var back TimeOnly
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tm.String(), back.String())
}

func TestTimeOnly_RejectsMalformed(t *testing.T) {
	var tm TimeOnly
	for _, raw := range []string{`"7:30"`, `"25:00:00"`, `"noon"`} {
		assert.Error(t, json.Unmarshal([]byte(raw), &tm), raw)
	}
}

func TestView_CopiesCollections(t *testing.T) {
	e := &Entity{
		ID:       "id",
		Name:     "n",
		Tags:     []string{"a"},
		Metadata: map[string]string{"k": "v"},
	}

	v := e.View()
	v.Tags[0] = "mutated"
	v.Metadata["k"] = "mutated"

	assert.Equal(t, []string{"a"}, e.Tags)
	assert.Equal(t, map[string]string{"k": "v"}, e.Metadata)
}

func TestView_OmitsAvatar(t *testing.T) {
	e := &Entity{ID: "id", Name: "n", Avatar: []byte{0x01, 0x02}, CreatedAt: time.Now()}

	data, err := json.Marshal(e.View())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "avatar")
}

func TestNewPagedResult_TotalPages(t *testing.T) {
	cases := []struct {
		totalCount, pageSize, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{10, 3, 4},
	}
	for _, tc := range cases {
		got := NewPagedResult([]int{}, 1, tc.pageSize, tc.totalCount)
		assert.Equal(t, tc.want, got.TotalPages, "count=%d size=%d", tc.totalCount, tc.pageSize)
	}
}
