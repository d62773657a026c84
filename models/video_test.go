package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefinementSet(t *testing.T) {
	tests := []struct {
		name string
		ops  func(t *testing.T, s *RefinementSet)
		want []string
	}{
		{
			name: "Toggle adds then removes",
			ops: func(t *testing.T, s *RefinementSet) {
				assert.True(t, s.Toggle("slow pan"))
				assert.True(t, s.Contains("slow pan"))
				assert.False(t, s.Toggle("slow pan"))
			},
			want: []string{},
		},
		{
			name: "Add ignores duplicates",
			ops: func(t *testing.T, s *RefinementSet) {
				assert.True(t, s.Add("a"))
				assert.True(t, s.Add("b"))
				assert.False(t, s.Add("a"))
			},
			want: []string{"a", "b"},
		},
		{
			name: "Remove middle keeps order",
			ops: func(t *testing.T, s *RefinementSet) {
				s.Add("a")
				s.Add("b")
				s.Add("c")
				assert.True(t, s.Remove("b"))
				assert.False(t, s.Remove("b"))
			},
			want: []string{"a", "c"},
		},
		{
			name: "Toggle appends at the end",
			ops: func(t *testing.T, s *RefinementSet) {
				s.Add("a")
				s.Add("b")
				s.Toggle("a")
				s.Toggle("a")
			},
			want: []string{"b", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s RefinementSet
			tt.ops(t, &s)
			assert.Equal(t, len(tt.want), s.Len())
			if len(tt.want) == 0 {
				assert.Empty(t, s.Values())
				return
			}
			assert.Equal(t, tt.want, s.Values())
		})
	}
}

func TestRefinementSetJSON(t *testing.T) {
	var s RefinementSet
	require.NoError(t, json.Unmarshal([]byte(`["a","b","a"]`), &s))
	assert.Equal(t, []string{"a", "b"}, s.Values())

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(data))

	data, err = json.Marshal(RefinementSet{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	assert.Error(t, json.Unmarshal([]byte(`"a"`), &s))
}

func TestRefinementSetValuesIsCopy(t *testing.T) {
	s := NewRefinementSet("a", "b")
	values := s.Values()
	values[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Values())
}
