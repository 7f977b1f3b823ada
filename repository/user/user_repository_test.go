package user

import (
	"strings"
	"testing"

	"github.com/muhammadheryan/car-traders/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildGetQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    *model.UserFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "by username",
			filter:    &model.UserFilter{Username: "alice"},
			wantWhere: "WHERE true AND username = ? LIMIT 1",
			wantArgs:  []any{"alice"},
		},
		{
			name:      "email owned by someone else",
			filter:    &model.UserFilter{Email: "a@b.com", ExcludeID: 7},
			wantWhere: "WHERE true AND email = ? AND id <> ? LIMIT 1",
			wantArgs:  []any{"a@b.com", uint64(7)},
		},
		{
			name:      "by id",
			filter:    &model.UserFilter{ID: 3},
			wantWhere: "WHERE true AND id = ? LIMIT 1",
			wantArgs:  []any{uint64(3)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildGetQuery(tt.filter)
			assert.True(t, strings.HasSuffix(query, tt.wantWhere), query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
