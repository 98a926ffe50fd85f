package ui

// Expansion records which summary groups are expanded. Groups default to
// collapsed; state lives only for the session.
type Expansion map[string]bool

// Expanded reports whether key is expanded.
func (e Expansion) Expanded(key string) bool {
	return e[key]
}

// Toggle flips key and returns the new state.
func (e Expansion) Toggle(key string) bool {
	e[key] = !e[key]
	return e[key]
}
