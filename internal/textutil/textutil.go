package textutil

import "fmt"

// HumanSize renders a byte count like "1.5 MB". Negative sizes mean
// "unknown" by convention.
func HumanSize(size int64) string {
	if size < 0 {
		return "unknown"
	}
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024.0 {
			if unit == "B" {
				return fmt.Sprintf("%d B", int64(value))
			}
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f PB", value)
}
