package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Revaluer defines the interface for triggering a catalog revaluation.
type Revaluer interface {
	RunRevalue(ctx context.Context) error
}

// RevalueHandler handles manual revaluation trigger requests.
type RevalueHandler struct {
	revaluer Revaluer
}

// NewRevalueHandler creates a new RevalueHandler.
func NewRevalueHandler(r Revaluer) *RevalueHandler {
	return &RevalueHandler{revaluer: r}
}

// RevalueOutput is the response body for the revalue endpoint.
type RevalueOutput struct {
	Body struct {
		Status string `json:"status" example:"revaluation completed" doc:"Revaluation status"`
	}
}

// Revalue triggers a full catalog revaluation pass.
func (h *RevalueHandler) Revalue(ctx context.Context, _ *struct{}) (*RevalueOutput, error) {
	if err := h.revaluer.RunRevalue(ctx); err != nil {
		return nil, huma.Error500InternalServerError("revaluation failed: " + err.Error())
	}

	resp := &RevalueOutput{}
	resp.Body.Status = "revaluation completed"
	return resp, nil
}

// RegisterRevalueRoutes registers the revaluation trigger with the Huma API.
func RegisterRevalueRoutes(api huma.API, h *RevalueHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-revalue",
		Method:      http.MethodPost,
		Path:        "/api/v1/revalue",
		Summary:     "Trigger catalog revaluation",
		Description: "Recomputes the derived size fields and unit prices for every " +
			"catalog entry.",
		Tags:   []string{"scheduler"},
		Errors: []int{http.StatusInternalServerError},
	}, h.Revalue)
}
