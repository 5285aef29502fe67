package ocr

import "regexp"

// actionablePatterns match text asking the reader to move money, hand over
// credentials or act on a prompt.
var actionablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)transfer.*\$\d+`),
	regexp.MustCompile(`(?i)send.*money`),
	regexp.MustCompile(`(?i)password.*[:=]`),
	regexp.MustCompile(`(?i)credit.*card`),
	regexp.MustCompile(`(?i)social.*security`),
	regexp.MustCompile(`(?i)login.*[:=]`),
	regexp.MustCompile(`(?i)username.*[:=]`),
	regexp.MustCompile(`(?i)click.*here.*now`),
	regexp.MustCompile(`(?i)verify.*account`),
	regexp.MustCompile(`(?i)confirm.*payment`),
}

func ContainsActionableContent(text string) bool {
	for _, pattern := range actionablePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
