package utils

import (
	"fmt"
	"strconv"
)

// ParseArgs converts the n arguments following a menu op code into integers.
func ParseArgs(fields []string, n int) ([]int, error) {
	if len(fields) < n {
		return nil, ErrMissingArgs
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("invalid command: argument %q: %w", fields[i], err)
		}
		out[i] = v
	}
	return out, nil
}

func ValidateSize(n int) error {
	if n < 1 {
		return ErrInvalidSize
	}
	return nil
}
