package tui

import "strings"

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// nextPriority returns the entry after current in priorityCycle
func nextPriority(current string) string {
	for i, p := range priorityCycle {
		if strings.EqualFold(p, current) {
			return priorityCycle[(i+1)%len(priorityCycle)]
		}
	}
	return priorityCycle[0]
}
