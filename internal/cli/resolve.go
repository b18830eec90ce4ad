package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/milestones/internal/domain"
)

// resolveProjectID accepts an exact project id or an unambiguous id prefix.
func resolveProjectID(app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	entries := app.Store.Projects()
	for _, e := range entries {
		if e.ID == input {
			return e.ID, nil
		}
	}

	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q: %w", input, domain.ErrProjectNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
