package ui

import "github.com/yskzt/gh-review-threads/internal/models"

// Prompter defines interface for user interaction
type Prompter interface {
	SelectActionable(rows []models.ActionableRow) (models.ActionableRow, error)
	ConfirmResolve(row models.ActionableRow) (bool, error)
}

// DefaultPrompter implements the actual prompting logic
type DefaultPrompter struct{}

// SelectActionable prompts user to pick an actionable thread
func (p *DefaultPrompter) SelectActionable(rows []models.ActionableRow) (models.ActionableRow, error) {
	return SelectActionable(rows)
}

// ConfirmResolve prompts user to confirm resolving a thread
func (p *DefaultPrompter) ConfirmResolve(row models.ActionableRow) (bool, error) {
	return ConfirmResolve(row)
}

// MockPrompter for testing
type MockPrompter struct {
	SelectedRow    models.ActionableRow
	SelectionError error

	Confirmed         bool
	ConfirmationError error

	// Call tracking
	SelectActionableCalled bool
	ConfirmResolveCalled   bool
	LastConfirmedRow       models.ActionableRow
}

// SelectActionable mocks thread selection
func (m *MockPrompter) SelectActionable(rows []models.ActionableRow) (models.ActionableRow, error) {
	m.SelectActionableCalled = true
	return m.SelectedRow, m.SelectionError
}

// ConfirmResolve mocks confirmation
func (m *MockPrompter) ConfirmResolve(row models.ActionableRow) (bool, error) {
	m.ConfirmResolveCalled = true
	m.LastConfirmedRow = row
	return m.Confirmed, m.ConfirmationError
}
