package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lekturai/model"
	"lekturai/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetExamRepo(client *mongo.Client) *ExamRepo {
	dbName := os.Getenv("MONGO_DB")
	db := client.Database(dbName)
	return &ExamRepo{
		Exams:     db.Collection(os.Getenv("EXAMS_COLLECTION")),
		Questions: db.Collection(os.Getenv("QUESTIONS_COLLECTION")),
		Answers:   db.Collection(os.Getenv("ANSWERS_COLLECTION")),
	}
}

type ExamRepo struct {
	Exams     *mongo.Collection
	Questions *mongo.Collection
	Answers   *mongo.Collection
}

// CreateExamWithContent stores an exam together with its questions and answer
// keys, as produced by the task-extraction scripts. Answers are linked to
// questions by question number.
func (r *ExamRepo) CreateExamWithContent(ctx context.Context, exam *model.Exam, questions []model.Question, answers []model.Answer) (string, error) {
	timer := utils.TrackDBOperation("insert", "exams")
	defer timer.ObserveDuration()

	if exam.Title == "" {
		utils.TrackError("database", "invalid_exam_data")
		return "", errors.New("exam title is required")
	}
	if exam.ExamID == "" {
		exam.ExamID = utils.GenerateID()
	}

	if _, err := r.Exams.InsertOne(ctx, exam); err != nil {
		utils.TrackError("database", "exam_creation_failed")
		return "", fmt.Errorf("failed to create exam: %w", err)
	}

	for i := range questions {
		questions[i].ExamID = exam.ExamID
		if questions[i].QuestionID == "" {
			questions[i].QuestionID = utils.GenerateID()
		}
	}
	if len(questions) > 0 {
		docs := make([]interface{}, 0, len(questions))
		for i := range questions {
			docs = append(docs, questions[i])
		}
		if _, err := r.Questions.InsertMany(ctx, docs); err != nil {
			utils.TrackError("database", "question_creation_failed")
			return "", fmt.Errorf("failed to create questions: %w", err)
		}
	}

	for i := range answers {
		answers[i].ExamID = exam.ExamID
		if answers[i].AnswerID == "" {
			answers[i].AnswerID = utils.GenerateID()
		}
	}
	if len(answers) > 0 {
		docs := make([]interface{}, 0, len(answers))
		for i := range answers {
			docs = append(docs, answers[i])
		}
		if _, err := r.Answers.InsertMany(ctx, docs); err != nil {
			utils.TrackError("database", "answer_creation_failed")
			return "", fmt.Errorf("failed to create answers: %w", err)
		}
	}

	return exam.ExamID, nil
}

func (r *ExamRepo) FindExam(ctx context.Context, examID string) (*model.Exam, error) {
	timer := utils.TrackDBOperation("find", "exams")
	defer timer.ObserveDuration()

	var exam model.Exam
	err := r.Exams.FindOne(ctx, bson.M{"exam_id": examID}).Decode(&exam)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "exam_lookup_error")
		return nil, fmt.Errorf("failed to read exam: %w", err)
	}

	return &exam, nil
}

// GetExamQuestions returns the exam's questions in number order.
func (r *ExamRepo) GetExamQuestions(ctx context.Context, examID string) ([]model.Question, error) {
	timer := utils.TrackDBOperation("find", "questions")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "number", Value: 1}})
	cursor, err := r.Questions.Find(ctx, bson.M{"exam_id": examID}, opts)
	if err != nil {
		utils.TrackError("database", "question_lookup_error")
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	var questions []model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		utils.TrackError("database", "question_decode_error")
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	return questions, nil
}

// GetExamAnswers returns the exam's answer keys indexed by question number.
func (r *ExamRepo) GetExamAnswers(ctx context.Context, examID string) (map[int]model.Answer, error) {
	timer := utils.TrackDBOperation("find", "answers")
	defer timer.ObserveDuration()

	cursor, err := r.Answers.Find(ctx, bson.M{"exam_id": examID})
	if err != nil {
		utils.TrackError("database", "answer_lookup_error")
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}

	var answers []model.Answer
	if err := cursor.All(ctx, &answers); err != nil {
		utils.TrackError("database", "answer_decode_error")
		return nil, fmt.Errorf("failed to decode answers: %w", err)
	}

	indexed := make(map[int]model.Answer, len(answers))
	for _, answer := range answers {
		indexed[answer.QuestionNumber] = answer
	}
	return indexed, nil
}

func (r *ExamRepo) FindQuestion(ctx context.Context, questionID string) (*model.Question, error) {
	timer := utils.TrackDBOperation("find", "questions")
	defer timer.ObserveDuration()

	var question model.Question
	err := r.Questions.FindOne(ctx, bson.M{"question_id": questionID}).Decode(&question)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		utils.TrackError("database", "question_lookup_error")
		return nil, fmt.Errorf("failed to read question: %w", err)
	}

	return &question, nil
}

// RandomQuestion picks one question across all stored exams.
func (r *ExamRepo) RandomQuestion(ctx context.Context) (*model.Question, error) {
	timer := utils.TrackDBOperation("aggregate", "questions")
	defer timer.ObserveDuration()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}

	cursor, err := r.Questions.Aggregate(ctx, pipeline)
	if err != nil {
		utils.TrackError("database", "question_sample_error")
		return nil, fmt.Errorf("failed to sample question: %w", err)
	}

	var questions []model.Question
	if err := cursor.All(ctx, &questions); err != nil {
		utils.TrackError("database", "question_decode_error")
		return nil, fmt.Errorf("failed to decode sampled question: %w", err)
	}
	if len(questions) == 0 {
		return nil, nil
	}

	return &questions[0], nil
}
