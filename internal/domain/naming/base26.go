package naming

const alphabetSize = 26

// SuffixWidth returns ceil(log26(count)): the number of letters needed to
// give each of count replays its own suffix. Counts of 0 and 1 need none.
func SuffixWidth(count int) int {
	width := 0
	for capacity := 1; capacity < count; capacity *= alphabetSize {
		width++
	}
	return width
}

// SubNumber returns the suffix of replay idx in a game of count replays.
// All suffixes of one game have the same width, so they sort in replay order.
func SubNumber(idx, count int) string {
	if count <= 1 {
		return ""
	}
	return ToBase26(idx, SuffixWidth(count))
}

// ToBase26 writes n with the digits a..z, left padded with 'a' to width.
// Numbers needing more letters than width are not truncated.
func ToBase26(n, width int) string {
	if n < 0 {
		n = 0
	}
	var digits []byte
	for {
		digits = append(digits, byte('a'+n%alphabetSize))
		n /= alphabetSize
		if n == 0 {
			break
		}
	}
	for len(digits) < width {
		digits = append(digits, 'a')
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
