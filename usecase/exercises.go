package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lekturai/model"
	"lekturai/repository"
	"lekturai/services"
	"lekturai/utils"
)

// Points awarded per completed task type. The grade itself is feedback for
// the student; streaks and leaderboards run on these flat per-task values.
const (
	ReadingTaskPoints = 10
	MaturaTaskPoints  = 2
)

// ExerciseService drives the grading flow: send the submission to the AI
// grader, then record the activity in the all-time stats, the daily window
// and the user's history.
type ExerciseService struct {
	Grader      *services.Grader
	Detector    *services.Detector
	Stats       *AllTimeStatsService
	Daily       *DailyWindowService
	HistoryRepo *repository.HistoryRepo
	ExamRepo    *repository.ExamRepo
}

// GradeOutcome is what the student sees after a submission.
type GradeOutcome struct {
	Grade            float64  `json:"grade"`
	Feedback         string   `json:"feedback"`
	AnswerKey        string   `json:"answer_key,omitempty"`
	AIDetectionScore *float64 `json:"ai_detection_score,omitempty"`
	PointsEarned     int64    `json:"points_earned"`
}

const readingExerciseInstruction = `You are a Polish literature teacher preparing
reading-comprehension tasks. Reply with the task text only, in Polish.`

// GenerateReading asks the model for a fresh task about the given reading,
// optionally limited to the chapters read so far.
func (svc *ExerciseService) GenerateReading(ctx context.Context, readingName string, toChapter int) (title, text string, err error) {
	if readingName == "" {
		return "", "", errors.New("reading name is required")
	}

	prompt := fmt.Sprintf("Prepare one written exercise about %q.", readingName)
	if toChapter > 0 {
		prompt += fmt.Sprintf(" Only cover chapters 1 through %d.", toChapter)
	}

	text, err = svc.Grader.GenerateContent(ctx, prompt, readingExerciseInstruction)
	if err != nil {
		return "", "", err
	}

	return fmt.Sprintf("Zadanie z: %s", readingName), text, nil
}

// SubmitReading grades a reading exercise and records the activity.
func (svc *ExerciseService) SubmitReading(ctx context.Context, userID, title, taskText, userAnswer string) (*GradeOutcome, error) {
	if userAnswer == "" {
		return nil, errors.New("answer is required")
	}

	result, err := svc.Grader.GradeSubmission(ctx, taskText, "", userAnswer)
	if err != nil {
		return nil, err
	}

	outcome := &GradeOutcome{
		Grade:            result.Grade,
		Feedback:         result.Feedback,
		AIDetectionScore: svc.Detector.DetectAIText(ctx, userAnswer),
		PointsEarned:     ReadingTaskPoints,
	}

	if err := svc.recordOutcome(ctx, userID, "reading", title, userAnswer, result.Feedback, outcome.PointsEarned); err != nil {
		return nil, err
	}

	return outcome, nil
}

// RandomMatura picks one matura question from the stored exam bank.
func (svc *ExerciseService) RandomMatura(ctx context.Context) (*model.Question, error) {
	question, err := svc.ExamRepo.RandomQuestion(ctx)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, errors.New("no matura questions available")
	}
	return question, nil
}

// SubmitMatura grades an answer to a stored matura question against its
// answer key and records the activity.
func (svc *ExerciseService) SubmitMatura(ctx context.Context, userID, questionID, userAnswer string) (*GradeOutcome, error) {
	if userAnswer == "" {
		return nil, errors.New("answer is required")
	}

	question, err := svc.ExamRepo.FindQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, fmt.Errorf("question %s not found", questionID)
	}

	answers, err := svc.ExamRepo.GetExamAnswers(ctx, question.ExamID)
	if err != nil {
		return nil, err
	}
	answerKey := answers[question.Number].Key

	result, err := svc.Grader.GradeSubmission(ctx, question.Text, answerKey, userAnswer)
	if err != nil {
		return nil, err
	}

	outcome := &GradeOutcome{
		Grade:            result.Grade,
		Feedback:         result.Feedback,
		AnswerKey:        answerKey,
		AIDetectionScore: svc.Detector.DetectAIText(ctx, userAnswer),
		PointsEarned:     MaturaTaskPoints,
	}

	if err := svc.recordOutcome(ctx, userID, "matura", question.Text, userAnswer, result.Feedback, outcome.PointsEarned); err != nil {
		return nil, err
	}

	return outcome, nil
}

// recordOutcome applies one graded task to every stats surface. Store
// failures propagate; the request layer decides how to present them.
func (svc *ExerciseService) recordOutcome(ctx context.Context, userID, taskType, question, answer, feedback string, points int64) error {
	if _, err := svc.Stats.RecordActivity(ctx, userID, points); err != nil {
		return err
	}

	if err := svc.Daily.RecordActivity(ctx, userID, utils.TodayKey(), points); err != nil {
		return err
	}

	entry := &model.HistoryEntry{
		UserID:   userID,
		Type:     taskType,
		Question: question,
		Response: answer,
		Eval:     feedback,
		Points:   points,
		Date:     time.Now().UTC(),
	}
	if _, err := svc.HistoryRepo.AddEntry(ctx, entry); err != nil {
		return err
	}

	utils.TrackActivity(taskType)
	return nil
}
