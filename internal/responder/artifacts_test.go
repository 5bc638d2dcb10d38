package responder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveArtifacts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "inline span keeps surrounding spacing",
			in:   "real text 'parts': [{'text': 'x'}], 'role': 'model' more text",
			want: "real text  more text",
		},
		{
			name: "multiline span",
			in:   "before\n'parts': [{'text': 'line one\nline two'}], 'role': 'model'\nafter",
			want: "before\n\nafter",
		},
		{
			name: "non-greedy across two spans",
			in:   "a 'parts': [{'text': '1'}], 'role': 'model' b 'parts': [{'text': '2'}], 'role': 'model' c",
			want: "a  b  c",
		},
		{
			name: "whole string is an artifact",
			in:   "'parts': [{'text': 'only'}], 'role': 'model'",
			want: "",
		},
		{
			name: "no artifact",
			in:   "  plain answer  ",
			want: "plain answer",
		},
		{
			name: "different role is kept",
			in:   "x 'parts': [{'text': 'q'}], 'role': 'user'",
			want: "x 'parts': [{'text': 'q'}], 'role': 'user'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveArtifacts(tt.in))
		})
	}
}
