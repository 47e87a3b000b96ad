// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  []int
	}{
		{"", 5, nil},
		{"   ", 5, nil},
		{"1", 5, []int{0}},
		{"1,3-5", 5, []int{0, 2, 3, 4}},
		{"5 1 3", 5, []int{0, 2, 4}},
		{"2-3, 3-4", 5, []int{1, 2, 3}},
		{"all", 3, []int{0, 1, 2}},
		{"ALL", 2, []int{0, 1}},
		{"*", 1, []int{0}},
		{"all", 0, []int{}},
		{"4-4", 4, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSelection(tt.input, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSelection_Invalid(t *testing.T) {
	for _, input := range []string{"0", "6", "x", "1-", "-2", "3-1", "1,two", "1-9"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSelection(input, 5)
			require.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}
