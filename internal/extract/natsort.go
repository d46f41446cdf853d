package extract

import "strconv"

// naturalKey extracts the numeric sort key of a filename: all digit
// characters concatenated and parsed as an integer, so "slide2" orders before
// "slide10". A name with no digits keys as 0.
func naturalKey(name string) int {
	digits := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		if name[i] >= '0' && name[i] <= '9' {
			digits = append(digits, name[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}
	n, err := strconv.Atoi(string(digits))
	if err != nil {
		// Overflow from absurdly long digit runs; fall back to the zero key.
		return 0
	}
	return n
}
