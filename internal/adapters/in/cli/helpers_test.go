package cli

import "regexp"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

func stripANSI(input string) string {
	return ansiPattern.ReplaceAllString(input, "")
}
