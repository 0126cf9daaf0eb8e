package model

import "time"

type ModuleSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level string `json:"level"`
}

type ModuleDetail struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Level   string `json:"level"`
	Content string `json:"content"`
}

// QuizQuestion is a Question without its answer key.
type QuizQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type GradeResult struct {
	Score   int `json:"score"`
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

type AuthResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

const (
	ProgressNotStarted = "not_started"
	ProgressAttempted  = "attempted"
)

type DashboardModule struct {
	ModuleSummary
	Status      string     `json:"status"`
	BestScore   *int       `json:"bestScore,omitempty"`
	LastAttempt *time.Time `json:"lastAttempt,omitempty"`
}

func (m *LearningModule) Summary() ModuleSummary {
	return ModuleSummary{ID: m.ID, Title: m.Title, Level: m.Level}
}

func (m *LearningModule) Detail() ModuleDetail {
	return ModuleDetail{ID: m.ID, Title: m.Title, Level: m.Level, Content: m.Content}
}

func (m *LearningModule) PublicQuiz() []QuizQuestion {
	quiz := make([]QuizQuestion, 0, len(m.Quiz))
	for _, q := range m.Quiz {
		quiz = append(quiz, QuizQuestion{ID: q.ID, Text: q.Text, Options: q.Options})
	}
	return quiz
}
