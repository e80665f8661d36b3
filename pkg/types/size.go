package types

import "fmt"

const (
	kib = 1024
	mib = 1024 * kib
	gib = 1024 * mib
)

// FormatSize renders a byte count with binary units: 512B, 2.0K, 5.0M, 1.5G.
func FormatSize(size int64) string {
	switch {
	case size < kib:
		return fmt.Sprintf("%dB", size)
	case size < mib:
		return fmt.Sprintf("%.1fK", float64(size)/kib)
	case size < gib:
		return fmt.Sprintf("%.1fM", float64(size)/mib)
	default:
		return fmt.Sprintf("%.1fG", float64(size)/gib)
	}
}
