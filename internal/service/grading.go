package service

import (
	"mindra_backend/internal/model"
	"mindra_backend/internal/util"
)

// Grade scores answers against the quiz answer key. Unknown question ids are
// ignored and only the first answer to a question counts. The score is the
// percentage of correct answers rounded half away from zero.
func Grade(quiz []model.Question, answers []model.Answer) (model.GradeResult, error) {
	total := len(quiz)
	if total == 0 {
		return model.GradeResult{}, util.ErrInvalidModule
	}

	key := make(map[string]int, total)
	for _, q := range quiz {
		// the first question with a given id owns it
		if _, ok := key[q.ID]; !ok {
			key[q.ID] = q.AnswerIndex
		}
	}

	seen := make(map[string]bool, len(answers))
	correct := 0
	for _, a := range answers {
		answerIndex, ok := key[a.QID]
		if !ok || seen[a.QID] {
			continue
		}
		seen[a.QID] = true
		if a.SelectedIndex != nil && *a.SelectedIndex == answerIndex {
			correct++
		}
	}

	return model.GradeResult{
		Score:   (correct*200 + total) / (2 * total),
		Correct: correct,
		Total:   total,
	}, nil
}
