// Package text normalizes the help text of console commands.
package text

import "strings"

// Indentation prefixes every example line.
const Indentation = "  "

// LongDesc trims the surrounding blank space of a long description and the common indentation of
// its lines, so descriptions can be written as indented raw strings.
func LongDesc(s string) string {
	return strings.Join(dedent(s), "\n")
}

// Examples normalizes command examples: each line is trimmed and indented once.
func Examples(s string) string {
	lines := dedent(s)
	for i, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			lines[i] = Indentation + line
		} else {
			lines[i] = ""
		}
	}

	return strings.Join(lines, "\n")
}

func dedent(s string) []string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	prefix := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if prefix < 0 || n < prefix {
			prefix = n
		}
	}
	for i, line := range lines {
		if len(line) >= prefix {
			lines[i] = strings.TrimRight(line[prefix:], " \t")
		} else {
			lines[i] = ""
		}
	}

	return lines
}
