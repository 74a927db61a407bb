package schemaval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		failure Failure
		want    string
	}{
		{
			name:    "type",
			failure: Failure{Field: "age", Rule: "type", Limit: "number", Observed: "string"},
			want:    `"age" must be of type "number"`,
		},
		{
			name:    "minLength",
			failure: Failure{Field: "name", Rule: "minLength", Limit: 5, Observed: 2},
			want:    `"name" must be at least "5" characters`,
		},
		{
			name:    "maxLength",
			failure: Failure{Field: "name", Rule: "maxLength", Limit: 10, Observed: 12},
			want:    `"name" may be at most "10" characters`,
		},
		{
			name:    "minProperties",
			failure: Failure{Field: "document", Rule: "minProperties", Limit: 2},
			want:    `"document" must hold at least "2" properties`,
		},
		{
			name:    "maxProperties",
			failure: Failure{Field: "document", Rule: "maxProperties", Limit: 4},
			want:    `"document" may hold at most "4" properties`,
		},
		{
			name:    "patternProperties",
			failure: Failure{Field: "document", Rule: "patternProperties", Limit: "^x-"},
			want:    `"document" must hold "^x-" properties`,
		},
		{
			name:    "minItems",
			failure: Failure{Field: "tags", Rule: "minItems", Limit: 1, Observed: 0},
			want:    `"tags" must have at least "1" items`,
		},
		{
			name:    "maxItems",
			failure: Failure{Field: "tags", Rule: "maxItems", Limit: 3, Observed: 5},
			want:    `"tags" may have at most "3" items`,
		},
		{
			name:    "required",
			failure: Failure{Field: "name", Rule: "required"},
			want:    `"name" is required but unset`,
		},
		{
			name:    "additionalProperties",
			failure: Failure{Field: "extra", Rule: "additionalProperties"},
			want:    `"extra" is not allowed as additionalProperties key`,
		},
		{
			name:    "additionalItems",
			failure: Failure{Field: "tags.3", Rule: "additionalItems"},
			want:    `"tags.3" is not allowed as additionalItems key`,
		},
		{
			name:    "fallback with description",
			failure: Failure{Field: "code", Rule: "pattern", Limit: "^[A-Z]+$", Description: "upper-case code"},
			want:    `"code" does not meet rule "pattern=^[A-Z]+$" - upper-case code`,
		},
		{
			name:    "fallback without description",
			failure: Failure{Field: "level", Rule: "enum", Limit: []any{"low", "high"}},
			want:    `"level" does not meet rule "enum=[low high]" - `,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate([]Failure{tt.failure})
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

// Messages come out in the order failures were discovered; translation must
// not sort them.
func TestTranslate_PreservesOrder(t *testing.T) {
	failures := []Failure{
		{Field: "z", Rule: "required"},
		{Field: "a", Rule: "minLength", Limit: 3},
	}
	got := Translate(failures)
	assert.Equal(t, []string{
		`"z" is required but unset`,
		`"a" must be at least "3" characters`,
	}, got)
}
