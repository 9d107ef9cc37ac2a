package models

import "time"

// User is the candidate profile filled in via the bot.
type User struct {
	TelegramID      int64 `gorm:"primaryKey"`
	FullName        string
	City            string
	DesiredPosition string
	Skills          string
	Resume          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LLMSettings is a per-user OpenAI-compatible endpoint configuration used
// for resume and cover letter generation. When absent, the process-level
// default provider is used.
type LLMSettings struct {
	UserID  int64 `gorm:"primaryKey"`
	BaseURL string
	APIKey  string
	Model   string
}

type ArbitraryData struct {
	ID    string `gorm:"primaryKey"`
	Value []byte
}
