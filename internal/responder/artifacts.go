package responder

import (
	"regexp"
	"strings"
)

// artifactPattern matches a leaked dump of the content object's fields,
// possibly spanning lines.
var artifactPattern = regexp.MustCompile(`(?s)'parts': \[\{'text':.*?\}\], 'role': 'model'`)

// RemoveArtifacts deletes leaked field dumps and trims the ends. Text
// around a removed span is left exactly as it was.
func RemoveArtifacts(text string) string {
	return strings.TrimSpace(artifactPattern.ReplaceAllString(text, ""))
}
