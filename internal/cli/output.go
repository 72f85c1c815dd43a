package cli

import (
	"fmt"
	"os"

	"github.com/staylens/staylens/internal/style"
)

// printTable outputs data in a human-readable table format
func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Print header
	for i, header := range headers {
		fmt.Printf("%-*s  ", widths[i], header)
	}
	fmt.Println()

	// Print separator
	for i := range headers {
		for j := 0; j < widths[i]; j++ {
			fmt.Print("-")
		}
		fmt.Print("  ")
	}
	fmt.Println()

	// Print rows
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				fmt.Printf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println()
	}
}

// Success prints a success message
func Success(message string) {
	style.Success(os.Stdout, message)
}

// Error prints an error message
func Error(message string) {
	style.Error(os.Stderr, message)
}

// Warning prints a warning message
func Warning(message string) {
	style.Warning(os.Stdout, message)
}

// Info prints an info message
func Info(message string) {
	style.Info(os.Stdout, message)
}
