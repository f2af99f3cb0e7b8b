// Package utils holds terminal helpers for previewing bitmaps.
package utils

import "fmt"

// ColoredBlock wraps block in a 24-bit ANSI background colour escape.
func ColoredBlock(block string, r, g, b uint8) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", r, g, b, block)
}
