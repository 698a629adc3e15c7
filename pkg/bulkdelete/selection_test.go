package bulkdelete

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelection_Ok(t *testing.T) {
	cases := []struct {
		name  string
		items []Candidate
		field string
	}{
		{name: "valid", items: []Candidate{{ID: "1", Version: 2}}},
		{name: "nil", items: nil, field: "Items"},
		{name: "empty", items: []Candidate{}, field: "Items"},
		{name: "missing id", items: []Candidate{{ID: "1"}, {Code: "P-2"}}, field: "ID"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &Selection{Items: tc.items}
			errs, ok := s.Ok(context.Background())
			if tc.field == "" {
				require.True(t, ok)
				require.Empty(t, errs)
				return
			}
			require.False(t, ok)
			require.Contains(t, errs, tc.field)
			require.NotEmpty(t, errs[tc.field])
		})
	}
}
