package ui

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/yskzt/gh-review-threads/internal/models"
)

// SelectActionable shows the actionable thread picker and returns the chosen
// row
func SelectActionable(rows []models.ActionableRow) (models.ActionableRow, error) {
	if len(rows) == 0 {
		return models.ActionableRow{}, fmt.Errorf("no actionable review threads")
	}

	items := make([]string, len(rows))
	for i, row := range rows {
		snippet := NormalizeBody(row.RawBody, true, nil)
		items[i] = fmt.Sprintf(
			"%s %s %s %s %s",
			PadRight(fmt.Sprintf("%d.", row.Index), 4),
			PadRight(TruncateDisplay(row.Location(), 40), 40),
			PadRight("@"+row.Author, 18),
			PadRight("["+row.Severity+"]", 10),
			TruncateDisplay(snippet, 60),
		)
	}

	prompt := promptui.Select{
		Label: "Select review thread",
		Items: items,
		Size:  12,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), input)
		},
		StartInSearchMode: true,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return models.ActionableRow{}, fmt.Errorf("prompt failed: %w", err)
	}
	return rows[idx], nil
}

// ConfirmResolve asks for confirmation before resolving the chosen thread
func ConfirmResolve(row models.ActionableRow) (bool, error) {
	var confirm string
	for {
		fmt.Printf("Resolve thread %s (%s)? (y/n): ", row.ThreadID, row.Location())
		if _, err := fmt.Scan(&confirm); err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		switch strings.ToLower(confirm) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		default:
			fmt.Println("Please enter 'y' or 'n'.")
		}
	}
}
