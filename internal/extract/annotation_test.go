package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAnnotations(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []Annotation
	}{
		{
			name:  "single annotation",
			input: "EX:2024.01.15 Budget approved",
			want:  []Annotation{{Date: "2024.01.15", Comment: "Budget approved"}},
		},
		{
			name:  "two annotations keep raw comment",
			input: "EX:2024.01.15 -= Delayed EX:2024.02.01 On track",
			want: []Annotation{
				{Date: "2024.01.15", Comment: "-= Delayed "},
				{Date: "2024.02.01", Comment: "On track"},
			},
		},
		{
			name:  "empty text",
			input: "",
			want:  nil,
		},
		{
			name:  "no marker",
			input: "Project is on track for Q3",
			want:  nil,
		},
		{
			name:  "nil cell",
			input: nil,
			want:  nil,
		},
		{
			name:  "non-text cell",
			input: 42,
			want:  nil,
		},
		{
			name:  "byte slice cell",
			input: []byte("EX:2024.05.05 bytes"),
			want:  []Annotation{{Date: "2024.05.05", Comment: "bytes"}},
		},
		{
			name:  "marker is case sensitive",
			input: "ex:2024.01.15 lower case",
			want:  nil,
		},
		{
			name:  "leading text is ignored",
			input: "Status report. EX: 2024.01.15 ok",
			want:  []Annotation{{Date: "2024.01.15", Comment: "ok"}},
		},
		{
			name:  "comment spans lines",
			input: "Intro\nEX: 2024.03.01\nLine one\nline two\n",
			want:  []Annotation{{Date: "2024.03.01", Comment: "Line one\nline two\n"}},
		},
		{
			name:  "no whitespace around date",
			input: "EX:2024.01.15Budget",
			want:  []Annotation{{Date: "2024.01.15", Comment: "Budget"}},
		},
		{
			name:  "empty comment body",
			input: "EX:2024.01.15EX:2024.01.16 next",
			want: []Annotation{
				{Date: "2024.01.15", Comment: ""},
				{Date: "2024.01.16", Comment: "next"},
			},
		},
		{
			name:  "trailing whitespace only",
			input: "EX:2024.01.15   ",
			want:  []Annotation{{Date: "2024.01.15", Comment: ""}},
		},
		{
			name:  "date is not calendar checked",
			input: "EX:2024.13.45 odd date",
			want:  []Annotation{{Date: "2024.13.45", Comment: "odd date"}},
		},
		{
			name:  "malformed date is skipped",
			input: "EX:2024-01-15 bad EX:2024.01.16 good",
			want:  []Annotation{{Date: "2024.01.16", Comment: "good"}},
		},
		{
			name:  "five digit year is skipped",
			input: "EX:20245.01.15 nope",
			want:  nil,
		},
		{
			name:  "bare marker ends previous comment",
			input: "EX:2024.01.15 first EX: no date here",
			want:  []Annotation{{Date: "2024.01.15", Comment: "first "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAnnotations(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAnnotations_NoMarkerIsEmpty(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"EX without colon 2024.01.15",
		"E X: 2024.01.15 spaced marker",
		"multi\nline\ntext",
	}
	for _, in := range inputs {
		assert.Empty(t, ExtractAnnotations(in), "input %q", in)
	}
}
