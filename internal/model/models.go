package model

// All returns every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Workspace{},
		&WorkspaceMember{},
		&Activity{},
		&Note{},
		&Document{},
		&Card{},
		&CardLike{},
		&CardBookmark{},
		&Chat{},
		&ChatParticipant{},
		&ChatMessage{},
	}
}
