package rendering

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-builder/internal/types"
)

// bulletMarker matches one leading bullet marker and the whitespace after it
var bulletMarker = regexp.MustCompile(`^[•-]\s*`)

// SplitName splits a full name into first and last name. The last
// whitespace-delimited token is the last name; everything before it,
// joined by single spaces, is the first name.
func SplitName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// ExtractHandle returns the final path segment of a profile URL, so
// "https://github.com/jane/" becomes "jane".
func ExtractHandle(profileURL string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(profileURL), "/")
	if trimmed == "" {
		return ""
	}
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}

// CleanURL strips the http(s) scheme and trailing slashes for display
func CleanURL(link string) string {
	cleaned := strings.TrimSpace(link)
	lower := strings.ToLower(cleaned)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			cleaned = cleaned[len(scheme):]
			break
		}
	}
	return strings.TrimRight(cleaned, "/")
}

// BulletLines splits a newline-delimited description into sanitized bullet
// texts. Blank lines are dropped and a single leading "•" or "-" marker is
// stripped from each line before sanitizing.
func BulletLines(description string) []string {
	var lines []string
	for _, line := range strings.Split(description, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		text := Sanitize(bulletMarker.ReplaceAllString(line, ""))
		if text == "" {
			continue
		}
		lines = append(lines, text)
	}
	return lines
}

// ReflowBullets renders a description either as \item lines (flat=false)
// or as one sentence with the lines joined by a space (flat=true).
func ReflowBullets(description string, flat bool) string {
	lines := BulletLines(description)
	if flat {
		return strings.Join(lines, " ")
	}
	items := make([]string, len(lines))
	for i, line := range lines {
		items[i] = `\item ` + line
	}
	return strings.Join(items, "\n")
}

// DateRange formats a sanitized "start--end" period. A blank end date on a
// current entry reads as "Present"; when only one side is set it is used alone.
func DateRange(start, end string, current bool) string {
	start = Sanitize(start)
	end = Sanitize(end)
	if end == "" && current {
		end = types.PresentSentinel
	}
	switch {
	case start != "" && end != "":
		return start + "--" + end
	case start != "":
		return start
	default:
		return end
	}
}

// itemize wraps \item lines in an itemize environment. An empty list yields
// "" because LaTeX rejects an itemize without items.
func itemize(items string) string {
	if strings.TrimSpace(items) == "" {
		return ""
	}
	return "\\begin{itemize}%\n" + items + "\n\\end{itemize}"
}
