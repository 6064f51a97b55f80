package dirtidy

import "strconv"

// FormatSize renders a byte count in the largest of b, K, M and G for which
// the quantity is at least one. The quotient is truncated, never rounded.
func FormatSize(n int64) string {
	const unit = 1024

	suffixes := []string{"b", "K", "M", "G"}

	i := 0
	for ; i < len(suffixes)-1 && n >= unit; i++ {
		n /= unit
	}

	return strconv.FormatInt(n, 10) + suffixes[i]
}
