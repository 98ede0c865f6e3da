package utils

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseHiddenSizes parses a comma-separated list of hidden layer widths, e.g.
// "8,4". An empty string means no hidden layers.
func ParseHiddenSizes(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrapf(err, "hidden size %q", p)
		}
		if n < 1 {
			return nil, errors.Errorf("hidden size must be positive, got %d", n)
		}
		sizes[i] = n
	}
	return sizes, nil
}
