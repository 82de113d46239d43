// Package timecode converts transcript time strings to and from seconds.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// ToSeconds parses MM:SS or HH:MM:SS. Any other shape yields 0.
func ToSeconds(s string) int {
	n, err := Parse(s)
	if err != nil {
		return 0
	}
	return n
}

// Parse is the strict form of ToSeconds.
func Parse(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("unrecognized time %q", s)
	}

	total := 0
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("unrecognized time %q", s)
		}
		total = total*60 + v
	}
	return total, nil
}

// ToHMS formats seconds as zero-padded HH:MM:SS.
func ToHMS(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
