package script

import "strings"

// AckMarker is the single byte the peripheral's interpreter echoes to signal
// command success (ASCII ACK).
const AckMarker = 0x06

// CommandOverhead is the headroom reserved per chunk for the wrapping command
// syntax, so that wrapper plus chunk always fit in maxStringBytes.
const CommandOverhead = 22

// escaper rewrites the payload for transport inside single-quoted string
// literals. Longest match wins at each position, so CRLF collapses to one
// \n before the bare-LF rule applies, and replacements are never rescanned.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	"\r\n", `\n`,
	"\n", `\n`,
	`'`, `\'`,
	`"`, `\"`,
)

// Escape rewrites s for safe embedding in a quoted command argument.
func Escape(s string) string {
	return escaper.Replace(s)
}

// safeBoundary returns the largest n <= limit such that escaped[:n] does not
// end in the middle of an escape pair. Escaped text is a sequence of single
// characters and two-character pairs introduced by a backslash; the boundary
// walks that structure instead of blindly trimming trailing backslashes,
// which mishandles runs of escaped backslashes.
func safeBoundary(escaped string, limit int) int {
	if limit >= len(escaped) {
		return len(escaped)
	}

	i := 0
	for i < limit {
		if escaped[i] == '\\' {
			if i+2 > limit {
				break
			}
			i += 2
			continue
		}
		i++
	}
	return i
}
