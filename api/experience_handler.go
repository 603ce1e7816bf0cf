package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type experienceHandler struct {
	responder      Responder
	logger         zerolog.Logger
	experienceRepo *database.ExperienceRepo
}

func newExperienceHandler(experienceRepo *database.ExperienceRepo) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		experienceRepo: experienceRepo,
	}
}

// toModel validates the date rules and copies the request onto experience
func (req ExperienceRequest) toModel(experience *models.Experience) error {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return err
	}

	experience.EndDate = nil
	if req.EndDate != nil && strings.TrimSpace(*req.EndDate) != "" {
		if req.Current {
			return errs.NewValidationError("endDate", `"endDate" must be empty when "current" is true`)
		}
		end, err := parseDate("endDate", *req.EndDate)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return errs.NewValidationError("endDate", `"endDate" must be greater than or equal to "startDate"`)
		}
		experience.EndDate = &end
	}

	experience.Title = strings.TrimSpace(req.Title)
	experience.Company = strings.TrimSpace(req.Company)
	experience.Location = req.Location
	experience.StartDate = start
	experience.Current = req.Current
	experience.Description = datatypes.JSONSlice[string](trimAll(req.Description))
	experience.Technologies = datatypes.JSONSlice[string](trimAll(req.Technologies))
	return nil
}

// getAllExperiences retrieves the work history
// @Summary Get all experiences
// @Tags Experiences
// @Produce json
// @Success 200 {array} models.Experience "Experiences, most recent start date first"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching experiences"
// @Router /api/experiences [get]
func (h experienceHandler) getAllExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.experienceRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "experiences", err))
			return
		}

		h.responder.WriteJSON(w, experiences)
	}
}

// createExperience creates a new experience entry
// @Summary Create experience
// @Tags Experiences
// @Accept json
// @Produce json
// @Param experience body ExperienceRequest true "Experience data"
// @Success 201 {object} models.Experience "Created experience"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid experience data"
// @Router /api/experiences [post]
func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExperienceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateStruct(req, nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var experience models.Experience
		if err := req.toModel(&experience); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.experienceRepo.Add(r.Context(), &experience); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Experience", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, experience)
	}
}

// updateExperience replaces the fields of an existing experience
// @Summary Update experience
// @Tags Experiences
// @Accept json
// @Produce json
// @Param id path string true "Experience ID" format(uuid)
// @Param experience body ExperienceRequest true "Updated experience data"
// @Success 200 {object} models.Experience "Updated experience"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid experience data"
// @Failure 404 {object} ErrorResponse "Not Found - Experience not found"
// @Router /api/experiences/{id} [put]
func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Experience")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req ExperienceRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateStruct(req, nil); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.experienceRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Experience", err))
			return
		}

		if err := req.toModel(experience); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.experienceRepo.Update(r.Context(), experience); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Experience", err))
			return
		}

		h.responder.WriteJSON(w, experience)
	}
}

// deleteExperience deletes an experience by ID
// @Summary Delete experience
// @Tags Experiences
// @Produce json
// @Param id path string true "Experience ID" format(uuid)
// @Success 200 {object} DeleteResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Experience not found"
// @Router /api/experiences/{id} [delete]
func (h experienceHandler) deleteExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Experience")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.experienceRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Experience", err))
			return
		}

		h.responder.WriteJSON(w, deleted("Experience"))
	}
}
