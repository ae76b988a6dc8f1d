package utils

import "strconv"

// ParseLimit returns 0 for anything that is not a positive integer;
// callers treat 0 as "use the default page size".
func ParseLimit(s string) int {
	limit, err := strconv.Atoi(s)
	if err != nil || limit <= 0 {
		return 0
	}

	return limit
}
