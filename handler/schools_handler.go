package handler

import (
	"log"

	"lekturai/repository"
	"lekturai/utils"

	"github.com/gin-gonic/gin"
)

type SchoolsHandler struct {
	SchoolRepo *repository.SchoolRepo
}

func NewSchoolsHandler(repo *repository.SchoolRepo) *SchoolsHandler {
	return &SchoolsHandler{SchoolRepo: repo}
}

// SearchByCity lists schools whose city starts with the phrase; an empty
// phrase lists all schools.
func (h *SchoolsHandler) SearchByCity(c *gin.Context) {
	schools, err := h.SchoolRepo.FindByCity(c.Request.Context(), c.Query("city"))
	if err != nil {
		log.Printf("Error searching schools by city: %v", err)
		utils.ServiceUnavailable(c, "Failed to search schools")
		return
	}

	utils.Success(c, schools)
}

// SearchByName lists schools whose name starts with the phrase.
func (h *SchoolsHandler) SearchByName(c *gin.Context) {
	schools, err := h.SchoolRepo.FindByName(c.Request.Context(), c.Query("name"))
	if err != nil {
		log.Printf("Error searching schools by name: %v", err)
		utils.ServiceUnavailable(c, "Failed to search schools")
		return
	}

	utils.Success(c, schools)
}
