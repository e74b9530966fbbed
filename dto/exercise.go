package dto

type ReadingExerciseResponse struct {
	Title string `json:"excercise_title"`
	Text  string `json:"excercise_text"`
}

type ReadingSubmitRequest struct {
	Title  string `json:"excercise_title" validate:"required"`
	Text   string `json:"excercise_text" validate:"required"`
	Answer string `json:"user_answer" validate:"required"`
}

type MaturaSubmitRequest struct {
	Answer string `json:"user_answer" validate:"required"`
}
