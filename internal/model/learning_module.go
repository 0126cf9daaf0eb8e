package model

import "time"

// swagger:model Module
type LearningModule struct {
	ID      string     `json:"id" yaml:"id"`
	Title   string     `json:"title" yaml:"title"`
	Level   string     `json:"level" yaml:"level"`
	Content string     `json:"content" yaml:"content"`
	Quiz    []Question `json:"quiz" yaml:"quiz"`
}

// Question is a multiple choice question. AnswerIndex must never leave the server.
type Question struct {
	ID          string   `json:"id" yaml:"id"`
	Text        string   `json:"text" yaml:"text"`
	Options     []string `json:"options" yaml:"options"`
	AnswerIndex int      `json:"answerIndex" yaml:"answerIndex"`
}

// Answer is a client supplied choice for one question.
type Answer struct {
	QID           string `json:"qId"`
	SelectedIndex *int   `json:"selectedIndex"`
}

// swagger:model ProgressRecord
type UserProgress struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ModuleID    string    `json:"moduleId"`
	BestScore   int       `json:"bestScore"`
	LastAttempt time.Time `json:"lastAttempt"`
}
