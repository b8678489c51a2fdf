package archive

import (
	"regexp"
	"strings"
)

// extractedRe matches one per-member status line of an extraction run:
// the word "Extracting", the member path, and a terminal "OK". unrar pads
// the path with spaces to align the status column, so the path capture is
// lazy and the OK anchor is greedy about the padding before it.
var extractedRe = regexp.MustCompile(`^Extracting +(.+?) +OK[ \t]*$`)

// ParseExtracted collects the paths of successfully extracted members from
// the raw output of an extraction run, in the order the lines appeared.
// Lines that are not an "Extracting ... OK" status line — banners, progress
// output, FAILED entries — contribute nothing. The result is empty but
// non-nil when no member was extracted.
func ParseExtracted(output string) []string {
	extracted := []string{}
	for _, line := range strings.Split(output, "\n") {
		m := extractedRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		extracted = append(extracted, m[1])
	}
	return extracted
}
