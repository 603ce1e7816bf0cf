package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, startup startupInfo) *routeHandlers {
	db := deps.Database
	return &routeHandlers{
		projectHandler:    newProjectHandler(db.ProjectRepo(), deps.Uploader),
		skillHandler:      newSkillHandler(db.SkillRepo()),
		experienceHandler: newExperienceHandler(db.ExperienceRepo()),
		messageHandler:    newMessageHandler(db.MessageRepo(), deps.Notifier),
		chatHandler:       newChatHandler(deps.Aggregator, deps.Completer, deps.Prompt),
		healthHandler:     newHealthHandler(startup),
	}
}

// idParam reads the {id} path parameter. Anything that is not a UUID cannot
// name a stored record, so it is reported as not found.
func idParam(r *http.Request, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errs.NewNotFound(entity)
	}
	return id, nil
}

func deleted(entity string) DeleteResponse {
	return DeleteResponse{Status: "success", Message: entity + " deleted successfully"}
}
