package model

type Exam struct {
	ExamID string `bson:"exam_id" json:"exam_id"`
	Title  string `bson:"title" json:"title"`
	Year   int    `bson:"year,omitempty" json:"year,omitempty"`
}

type Question struct {
	QuestionID string `bson:"question_id" json:"question_id"`
	ExamID     string `bson:"exam_id" json:"exam_id"`
	Number     int    `bson:"number" json:"number"`
	Text       string `bson:"text" json:"text"`
	MaxPoints  int    `bson:"max_points" json:"max_points"`
}

type Answer struct {
	AnswerID       string `bson:"answer_id" json:"answer_id"`
	ExamID         string `bson:"exam_id" json:"exam_id"`
	QuestionNumber int    `bson:"question_number" json:"question_number"`
	Key            string `bson:"key" json:"key"` // model answer used by the grader
}
