package platform

import (
	"context"
	"fmt"
	"strings"
)

// FindWindow returns the first window whose title contains any of the match
// substrings, compared case-insensitively.
func FindWindow(windows []Window, match []string) (Window, bool) {
	for _, w := range windows {
		title := strings.ToLower(w.Title)
		for _, m := range match {
			if m != "" && strings.Contains(title, strings.ToLower(m)) {
				return w, true
			}
		}
	}
	return Window{}, false
}

// BringForward raises the first window matching match, or launches one of
// launch when no window matches or raising fails.
func BringForward(ctx context.Context, dir Directory, launcher Launcher, match, launch []string) error {
	if dir != nil && len(match) > 0 {
		windows, err := dir.Windows(ctx)
		if err == nil {
			if w, ok := FindWindow(windows, match); ok {
				if err := dir.Activate(ctx, w); err == nil {
					return nil
				}
			}
		}
	}

	if launcher == nil || len(launch) == 0 {
		return fmt.Errorf("no window matches %v and nothing to launch", match)
	}
	if err := launcher.Launch(ctx, launch); err != nil {
		return fmt.Errorf("failed to launch %v: %w", launch, err)
	}
	return nil
}
