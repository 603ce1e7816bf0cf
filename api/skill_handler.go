package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

func (req SkillRequest) apply(skill *models.Skill) {
	skill.Name = strings.TrimSpace(req.Name)
	skill.Category = models.SkillCategory(req.Category)
	skill.Icon = req.Icon
	skill.Proficiency = *req.Proficiency
}

// getAllSkills retrieves all skills
// @Summary Get all skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill "Skills, newest first"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching skills"
// @Router /api/skills [get]
func (h skillHandler) getAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "skills", err))
			return
		}

		h.responder.WriteJSON(w, skills)
	}
}

// createSkill creates a new skill
// @Summary Create skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body SkillRequest true "Skill data"
// @Success 201 {object} models.Skill "Created skill"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid skill data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating skill"
// @Router /api/skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SkillRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateStruct(req, nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var skill models.Skill
		req.apply(&skill)
		if err := h.skillRepo.Add(r.Context(), &skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Skill", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, skill)
	}
}

// updateSkill replaces the fields of an existing skill
// @Summary Update skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param id path string true "Skill ID" format(uuid)
// @Param skill body SkillRequest true "Updated skill data"
// @Success 200 {object} models.Skill "Updated skill"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid skill data"
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /api/skills/{id} [put]
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req SkillRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateStruct(req, nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.skillRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Skill", err))
			return
		}

		req.apply(skill)
		if err := h.skillRepo.Update(r.Context(), skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Skill", err))
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

// deleteSkill deletes a skill by ID
// @Summary Delete skill
// @Tags Skills
// @Produce json
// @Param id path string true "Skill ID" format(uuid)
// @Success 200 {object} DeleteResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /api/skills/{id} [delete]
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Skill", err))
			return
		}

		h.responder.WriteJSON(w, deleted("Skill"))
	}
}
