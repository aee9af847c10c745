package task

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// runningIndicator is the generic "still running" status text, shown whenever
// no specialized parser produces something better.
const runningIndicator = "Running"

// parserKind enumerates the known per-command output parsers. The set is
// small and known at build time, so dispatch is a closed switch rather than
// a registry of interface values.
type parserKind int

const (
	parserGeneric parserKind = iota
	parserCurl
)

// curlProgress matches curl's progress meter line and captures the percentage
// and the current transfer rate (the last word on the line).
var curlProgress = regexp.MustCompile(`(\d+).*?(\w+)$`)

// parserFor picks a parser by the command's first whitespace-delimited token.
func parserFor(command string) parserKind {
	name := command
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[:i]
	}
	switch filepath.Base(name) {
	case "curl":
		return parserCurl
	default:
		return parserGeneric
	}
}

// deriveStatus turns one output line into a status summary. Best effort and
// purely cosmetic: a non-matching line falls back to the generic indicator.
func deriveStatus(command, line string) string {
	switch parserFor(command) {
	case parserCurl:
		if m := curlProgress.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return fmt.Sprintf("%s/s %s%%", m[2], m[1])
		}
	}
	return runningIndicator
}
