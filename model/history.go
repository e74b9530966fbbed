package model

import "time"

// HistoryEntry records one graded exchange with the AI service.
type HistoryEntry struct {
	EntryID  string    `bson:"entry_id" json:"entry_id"`
	UserID   string    `bson:"user_id" json:"user_id"`
	Type     string    `bson:"type" json:"type"` // reading / matura / chat
	Question string    `bson:"question" json:"question"`
	Response string    `bson:"response" json:"response"`
	Eval     string    `bson:"eval" json:"eval"`
	Points   int64     `bson:"points" json:"points"`
	Date     time.Time `bson:"date" json:"date"`
}
