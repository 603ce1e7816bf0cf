package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	uploader    services.ImageUploader
}

func newProjectHandler(projectRepo *database.ProjectRepo, uploader services.ImageUploader) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		uploader:    uploader,
	}
}

func (req ProjectRequest) apply(project *models.Project) {
	project.Title = strings.TrimSpace(req.Title)
	project.Description = req.Description
	project.Technologies = datatypes.JSONSlice[string](trimAll(req.Technologies))
	project.GithubURL = req.GithubURL
	project.LiveURL = req.LiveURL
	project.Category = req.Category
	if req.Image != nil && *req.Image != "" {
		image := *req.Image
		project.Image = &image
	}
}

// readProject parses a JSON or multipart project body, validates it and
// uploads the attached image, if any. The returned request carries the image
// URL when one was uploaded.
func (h projectHandler) readProject(w http.ResponseWriter, r *http.Request) (ProjectRequest, error) {
	if !isMultipart(r) {
		var req ProjectRequest
		if err := decodeJSON(w, r, &req); err != nil {
			return req, err
		}
		if err := validateStruct(req, nil); err != nil {
			return req, err
		}
		return req, nil
	}

	req, err := parseMultipartProject(w, r)
	if r.MultipartForm != nil {
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				h.logger.Warn().Err(err).Msg("failed to remove multipart temp files")
			}
		}()
	}
	if err != nil {
		return req, err
	}
	if err := validateStruct(req, nil); err != nil {
		return req, err
	}

	staged, err := stageImage(r, h.logger)
	if err != nil {
		return req, err
	}
	if staged == nil {
		return req, nil
	}
	defer staged.remove()

	url, err := staged.upload(r.Context(), h.uploader)
	if err != nil {
		return req, err
	}
	req.Image = &url
	return req, nil
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all projects, newest first
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching projects"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a project from a JSON body or a multipart form with an optional image file
// @Tags Projects
// @Accept json,mpfd
// @Produce json
// @Param project body ProjectRequest true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Image upload failed"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := h.readProject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var project models.Project
		req.apply(&project)
		if err := h.projectRepo.Add(r.Context(), &project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "Project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject updates an existing project
// @Summary Update project
// @Description Replaces project fields; the stored image is kept unless a new one is sent
// @Tags Projects
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Param project body ProjectRequest true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		// Verify project exists before any upload happens
		project, err := h.projectRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "Project", err))
			return
		}

		req, err := h.readProject(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		req.apply(project)
		if err := h.projectRepo.Update(r.Context(), project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "Project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID" format(uuid)
// @Success 200 {object} DeleteResponse "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /api/projects/{id} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "Project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "Project", err))
			return
		}

		h.responder.WriteJSON(w, deleted("Project"))
	}
}
