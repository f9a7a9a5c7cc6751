package entity

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&UserPreferences{},
		&Task{},
		&Note{},
		&Expense{},
		&Event{},
		&CheckIn{},
		&OAuthState{},
		&Connection{},
	}
}
