package generator

import (
	"strconv"
	"strings"
)

// ParseTimeSeconds converts loose time strings like "2 minutes" or
// "30 seconds" to seconds. Anything unparseable is 0.
func ParseTimeSeconds(timeStr string) int {
	timeStr = strings.ToLower(strings.TrimSpace(timeStr))
	fields := strings.Fields(timeStr)
	if len(fields) == 0 {
		return 0
	}
	num, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	switch {
	case strings.Contains(timeStr, "minute") || strings.Contains(timeStr, "min"):
		return int(num * 60)
	case strings.Contains(timeStr, "second") || strings.Contains(timeStr, "sec"):
		return int(num)
	}
	return 0
}
