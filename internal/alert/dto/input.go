package dto

import "github.com/fekuna/omnipos-inventory-service/internal/model"

type UpdateSuggestionInput struct {
	Status      model.SuggestionStatus `json:"status"`
	Notes       *string                `json:"notes"`
	ProcessedBy string                 `json:"-"`
}
