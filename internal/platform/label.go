package platform

import (
	"regexp"
	"strings"
)

// CleanLabel strips a trailing " - <app>" suffix for any of appNames and
// returns "" when what is left is just an app name, which players show while
// idle.
func CleanLabel(label string, appNames []string) string {
	clean := label
	for _, app := range appNames {
		if app == "" {
			continue
		}
		re := regexp.MustCompile(`(?i)\s*-\s*` + regexp.QuoteMeta(app) + `.*$`)
		clean = re.ReplaceAllString(clean, "")
	}
	clean = strings.TrimSpace(clean)

	for _, app := range appNames {
		if strings.EqualFold(clean, app) {
			return ""
		}
	}
	return clean
}
