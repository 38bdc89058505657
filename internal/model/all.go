package model

// All returns every model that has a table, in dependency order
func All() []any {
	return []any{
		&User{},
		&Word{},
		&Meaning{},
		&Definition{},
		&Phonetic{},
		&Image{},
		&UserWord{},
		&WordReminder{},
		&UserWordReminderLink{},
		&AutoWordReminder{},
	}
}
