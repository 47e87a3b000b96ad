// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package picker

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ParseSelection turns typed input into zero-based indexes into a list of n entries.
//
// Entries are one-based numbers or ranges separated by commas or spaces, e.g. "1,3-5".
// "all" or "*" selects everything and empty input selects nothing.
// The result is sorted and free of duplicates.
func ParseSelection(input string, n int) ([]int, error) {
	input = strings.TrimSpace(strings.ToLower(input))

	switch input {
	case "":
		return nil, nil
	case "all", "*":
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}

		return all, nil
	}

	seen := make(map[int]struct{})

	for _, tok := range strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' }) {
		lo, hi, err := parseRange(tok)
		if err != nil {
			return nil, errors.Join(ErrInvalidSelection, err)
		}

		if lo < 1 || hi > n || lo > hi {
			return nil, errors.Join(ErrInvalidSelection, fmt.Errorf("%q is outside 1-%d", tok, n))
		}

		for i := lo; i <= hi; i++ {
			seen[i-1] = struct{}{}
		}
	}

	res := make([]int, 0, len(seen))
	for i := range seen {
		res = append(res, i)
	}

	slices.Sort(res)

	return res, nil
}

func parseRange(tok string) (int, int, error) {
	before, after, isRange := strings.Cut(tok, "-")

	lo, err := strconv.Atoi(before)
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a number", before)
	}

	if !isRange {
		return lo, lo, nil
	}

	hi, err := strconv.Atoi(after)
	if err != nil {
		return 0, 0, fmt.Errorf("%q is not a number", after)
	}

	return lo, hi, nil
}
