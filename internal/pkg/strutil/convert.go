package strutil

import "strconv"

// ConvertToInt parses s as a base-10 int. Invalid input yields 0.
func ConvertToInt(s string) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return value
}
