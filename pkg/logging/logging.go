package logging

import (
	"log"
	"os"

	"github.com/fatih/color"
)

func init() {
	// Set the global logger to use standard output.
	log.SetOutput(os.Stdout)
}

// warnColor renders a warning line in yellow.
func warnColor(line string) string {
	return color.YellowString(line)
}

// errorColor renders an error line in red.
func errorColor(line string) string {
	return color.RedString(line)
}
