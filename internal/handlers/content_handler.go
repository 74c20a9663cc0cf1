package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/utils"
)

// ContentHandler serves the read-only content tree. Sections come back in
// display order; exercises are addressable by their tree-wide unique id.
type ContentHandler struct {
	BaseHandler
	tree *content.Tree
}

// SectionSummary is the list form of a section, without the exercises.
type SectionSummary struct {
	ID            string                 `json:"id"`
	Title         models.LocalizedString `json:"title"`
	ExerciseCount int                    `json:"exercise_count"`
}

func NewContentHandler(tree *content.Tree, logger utils.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: NewBaseHandler(logger),
		tree:        tree,
	}
}

// ListSections returns all sections in display order
// @Summary List sections
// @Tags content
// @Produce json
// @Success 200 {array} SectionSummary
// @Router /content/sections [get]
func (h *ContentHandler) ListSections(c *gin.Context) {
	sections := h.tree.Sections()

	summaries := make([]SectionSummary, 0, len(sections))
	for _, section := range sections {
		summaries = append(summaries, SectionSummary{
			ID:            section.ID,
			Title:         section.Title,
			ExerciseCount: len(section.Exercises),
		})
	}

	c.JSON(http.StatusOK, summaries)
}

// GetSection returns one section with its full exercise list
// @Summary Get section
// @Tags content
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} models.Section
// @Failure 404 {object} ErrorResponse
// @Router /content/sections/{id} [get]
func (h *ContentHandler) GetSection(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	section, ok := h.tree.Section(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Section not found",
		})
		return
	}

	c.JSON(http.StatusOK, section)
}

// GetExercise returns one exercise definition by id
// @Summary Get exercise
// @Tags content
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} models.Exercise
// @Failure 404 {object} ErrorResponse
// @Router /content/exercises/{id} [get]
func (h *ContentHandler) GetExercise(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	exercise, ok := h.tree.Exercise(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Exercise not found",
		})
		return
	}

	sectionID, _ := h.tree.SectionOf(id)
	c.JSON(http.StatusOK, gin.H{
		"exercise":   exercise,
		"section_id": sectionID,
	})
}
