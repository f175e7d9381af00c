package chat

import "time"

// ChatMessage is one FAQ exchange. Matched is false when a fallback answer
// was returned.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null;column:user_id" json:"user_id"`
	Question  string    `gorm:"not null;column:question" json:"question"`
	Answer    string    `gorm:"not null;column:answer" json:"answer"`
	Matched   bool      `gorm:"not null;column:matched" json:"matched"`
	Score     float64   `gorm:"column:score" json:"score"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
