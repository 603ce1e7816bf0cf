package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler    projectHandler
	skillHandler      skillHandler
	experienceHandler experienceHandler
	messageHandler    messageHandler
	chatHandler       chatHandler
	healthHandler     healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"\"title\" is required"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// RouteErrorResponse is returned for unknown paths and unsupported methods
type RouteErrorResponse struct {
	Error  string `json:"error" example:"Route not found"`
	Path   string `json:"path" example:"/api/unknown"`
	Method string `json:"method" example:"GET"`
}

// DeleteResponse confirms a deletion
type DeleteResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Skill deleted successfully"`
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message *string `json:"message" validate:"required,min=1,max=1000"`
}

// ChatResponse carries the assistant reply
type ChatResponse struct {
	Response  string `json:"response" example:"I have 5 years and 3 months of experience..."`
	Timestamp string `json:"timestamp" example:"2024-06-10T12:00:00.000Z"`
}

// ChatHistoryResponse is returned by GET /api/chat/history
type ChatHistoryResponse struct {
	Message string `json:"message"`
	History []any  `json:"history"`
}

// SkillRequest is the body of skill create and update
type SkillRequest struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=frontend backend database devops other"`
	Icon        string `json:"icon" validate:"required,uri"`
	Proficiency *int   `json:"proficiency" validate:"required,gte=1,lte=100"`
}

// ExperienceRequest is the body of experience create and update
type ExperienceRequest struct {
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      *string  `json:"endDate"`
	Current      bool     `json:"current"`
	Description  []string `json:"description" validate:"required,min=1,dive,required"`
	Technologies []string `json:"technologies" validate:"required,min=1,dive,required"`
}

// MessageRequest is the body of a contact form submission
type MessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
	Status  string `json:"status" validate:"omitempty,oneof=unread read replied"`
}

// MessageStatusRequest is the body of PATCH /api/messages/{id}/status
type MessageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read replied"`
}

// ProjectRequest holds project fields from either a JSON or a multipart body
type ProjectRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Image        *string  `json:"image" validate:"omitempty,url"`
	Technologies []string `json:"technologies" validate:"required,min=1,dive,required"`
	GithubURL    string   `json:"githubUrl" validate:"required"`
	LiveURL      string   `json:"liveUrl" validate:"required"`
	Category     string   `json:"category" validate:"required"`
}
