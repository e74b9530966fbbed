package handler

import (
	"errors"
	"log"
	"strconv"

	"lekturai/dto"
	"lekturai/services"
	"lekturai/usecase"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
)

type ExercisesHandler struct {
	Exercises *usecase.ExerciseService
}

func NewExercisesHandler(exercises *usecase.ExerciseService) *ExercisesHandler {
	return &ExercisesHandler{Exercises: exercises}
}

// GenerateReading returns a fresh AI-generated task for a reading.
func (h *ExercisesHandler) GenerateReading(c *gin.Context) {
	readingName := c.Param("reading_name")
	toChapter, _ := strconv.Atoi(c.Query("to_chapter"))

	title, text, err := h.Exercises.GenerateReading(c.Request.Context(), readingName, toChapter)
	if err != nil {
		if errors.Is(err, services.ErrGraderNotConfigured) {
			utils.ServiceUnavailable(c, "AI service is not configured")
			return
		}
		log.Printf("Error generating reading exercise: %v", err)
		utils.ServiceUnavailable(c, "Failed to generate exercise")
		return
	}

	utils.Success(c, dto.ReadingExerciseResponse{Title: title, Text: text})
}

// SubmitReading grades a reading submission and records the activity.
func (h *ExercisesHandler) SubmitReading(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.ReadingSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid submission")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		utils.BadRequest(c, "Title, text and answer are required")
		return
	}

	outcome, err := h.Exercises.SubmitReading(c.Request.Context(), userID.(string), req.Title, req.Text, req.Answer)
	if err != nil {
		if errors.Is(err, services.ErrGraderNotConfigured) {
			utils.ServiceUnavailable(c, "AI service is not configured")
			return
		}
		log.Printf("Error grading reading submission for %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to grade submission")
		return
	}

	utils.Success(c, outcome)
}

// RandomMatura returns one random matura question from the bank.
func (h *ExercisesHandler) RandomMatura(c *gin.Context) {
	question, err := h.Exercises.RandomMatura(c.Request.Context())
	if err != nil {
		log.Printf("Error sampling matura question: %v", err)
		utils.ServiceUnavailable(c, "Failed to fetch matura question")
		return
	}

	utils.Success(c, question)
}

// SubmitMatura grades an answer to a stored matura question.
func (h *ExercisesHandler) SubmitMatura(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}

	var req dto.MaturaSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid submission")
		return
	}
	if err := utils.Validate.Struct(&req); err != nil {
		utils.BadRequest(c, "Answer is required")
		return
	}

	outcome, err := h.Exercises.SubmitMatura(c.Request.Context(), userID.(string), c.Param("question_id"), req.Answer)
	if err != nil {
		if errors.Is(err, services.ErrGraderNotConfigured) {
			utils.ServiceUnavailable(c, "AI service is not configured")
			return
		}
		log.Printf("Error grading matura submission for %s: %v", userID, err)
		utils.ServiceUnavailable(c, "Failed to grade submission")
		return
	}

	utils.Success(c, outcome)
}
