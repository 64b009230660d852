// Package report parses the downloaded postings report file: a
// semicolon-delimited, quote-wrapped text whose header row is localized
// and whose column layout is discovered by header text, not position.
package report

import "strings"

const (
	// postingNumberMarker is the localized header phrase of the posting
	// number column. The column index is discovered by scanning for it.
	postingNumberMarker = "Номер отправления"

	delimiter = ";"
)

// ExtractPostingNumbers returns the posting numbers of every data row,
// in input order. The first line with a column containing the marker
// phrase is consumed as the header and fixes the target column index.
// Blank lines, empty cells and repeated header lines are skipped. If no
// header is ever found the result is empty; that is the caller's call
// to make, not an error here.
func ExtractPostingNumbers(raw string) []string {
	var numbers []string
	headerFound := false
	targetIndex := -1

	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		columns := strings.Split(line, delimiter)

		if !headerFound {
			for i, column := range columns {
				if strings.Contains(trimQuotes(column), postingNumberMarker) {
					targetIndex = i
					headerFound = true
					break
				}
			}
			continue
		}

		if targetIndex >= len(columns) {
			continue
		}
		value := trimQuotes(columns[targetIndex])
		if value == "" || value == postingNumberMarker {
			continue
		}
		numbers = append(numbers, value)
	}

	return numbers
}

// trimQuotes strips surrounding quote characters and whitespace. Fields
// are not unescaped beyond that; the format has no embedded delimiters.
func trimQuotes(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
