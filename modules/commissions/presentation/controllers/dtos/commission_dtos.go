package dtos

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/plexdi/studio/modules/commissions/domain/aggregates/commission"
	"github.com/plexdi/studio/pkg/constants"
)

const (
	ErrorCodeInvalidRequest = "INVALID_REQUEST"
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeNotFound       = "NOT_FOUND"
	ErrorCodeStaleView      = "STALE_VIEW"
	ErrorCodeUpstream       = "UPSTREAM_ERROR"
)

// IntakeDTO is the public commission form. Either an email or a discord
// handle must be present; name, details and type are required outright.
// Item defaults to the project type and a tier is only demanded for
// package kinds.
type IntakeDTO struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required_without=Discord,omitempty,email"`
	Discord string `form:"discord" json:"discord" validate:"required_without=Email"`
	Details string `form:"details" json:"details" validate:"required"`
	Type    string `form:"type" json:"type" validate:"required"`
	Item    string `form:"item" json:"item" validate:"omitempty"`
	Tier    string `form:"tier" json:"tier" validate:"omitempty"`
}

// AdminCreateDTO is the dashboard's quick-create: only a name is
// required, the type falls back to general.
type AdminCreateDTO struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Discord string `json:"discord" validate:"omitempty"`
	Details string `json:"details" validate:"omitempty"`
	Type    string `json:"type" validate:"omitempty"`
}

type UpdateStatusDTO struct {
	Status   string `json:"status" validate:"required"`
	Revision uint64 `json:"revision" validate:"omitempty"`
}

func validationMessages(err error) map[string]string {
	errorMessages := map[string]string{}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		errorMessages["_"] = err.Error()
		return errorMessages
	}
	for _, fieldErr := range errs {
		errorMessages[fieldErr.Field()] = fmt.Sprintf("%s failed on %q", fieldErr.Field(), fieldErr.Tag())
	}
	return errorMessages
}

func (dto *IntakeDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return validationMessages(err), false
	}
	kind, err := commission.ParseKind(dto.Type)
	if err != nil {
		return map[string]string{"Type": "unknown project type"}, false
	}
	if kind.IsPackage() && dto.Tier == "" {
		return map[string]string{"Tier": "tier is required for package commissions"}, false
	}
	return map[string]string{}, true
}

func (dto *AdminCreateDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return validationMessages(err), false
	}
	if dto.Type != "" {
		if _, err := commission.ParseKind(dto.Type); err != nil {
			return map[string]string{"Type": "unknown project type"}, false
		}
	}
	return map[string]string{}, true
}

// Kind resolves the requested project type, falling back to general
// when the field was left empty.
func (dto *AdminCreateDTO) Kind() commission.Kind {
	if dto.Type == "" {
		return commission.KindGeneral
	}
	kind, _ := commission.ParseKind(dto.Type)
	return kind
}

func (dto *UpdateStatusDTO) Ok() (map[string]string, bool) {
	if err := constants.Validate.Struct(dto); err != nil {
		return validationMessages(err), false
	}
	if _, err := commission.ParseStatusDisplay(dto.Status); err != nil {
		return map[string]string{"Status": "unknown status"}, false
	}
	return map[string]string{}, true
}

// CommissionResponse is the admin-facing view of a record: machine
// tokens for patching plus display strings for rendering.
type CommissionResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Discord       string   `json:"discord"`
	Details       string   `json:"details"`
	Type          string   `json:"type"`
	TypeDisplay   string   `json:"type_display"`
	Status        string   `json:"status"`
	StatusDisplay string   `json:"status_display"`
	CreatedAt     string   `json:"created_at"`
	Designers     []string `json:"designers"`
	Optimistic    bool     `json:"optimistic,omitempty"`
}

func NewCommissionResponse(c commission.Commission) CommissionResponse {
	createdAt := ""
	if !c.CreatedAt().IsZero() {
		createdAt = c.CreatedAt().Format(time.RFC3339)
	}
	return CommissionResponse{
		ID:            c.ID(),
		Name:          c.Name(),
		Email:         c.Email(),
		Discord:       c.Discord(),
		Details:       c.Details(),
		Type:          string(c.Kind()),
		TypeDisplay:   c.Kind().Display(),
		Status:        string(c.Status()),
		StatusDisplay: c.Status().Display(),
		CreatedAt:     createdAt,
		Designers:     c.Designers(),
		Optimistic:    c.IsOptimistic(),
	}
}

func NewCommissionListResponse(items []commission.Commission, revision uint64) CommissionListResponse {
	responses := make([]CommissionResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewCommissionResponse(item))
	}
	return CommissionListResponse{Revision: revision, Commissions: responses}
}

type CommissionListResponse struct {
	Revision    uint64               `json:"revision"`
	Commissions []CommissionResponse `json:"commissions"`
}

type IntakeResponse struct {
	CommissionID string `json:"commission_id"`
	CheckoutURL  string `json:"checkout_url"`
}
