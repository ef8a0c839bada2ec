package customer_notes

import (
	"time"

	"github.com/m04kA/SMC-SlotCapacity/internal/domain"
)

// NoteRequest HTTP request model
type NoteRequest struct {
	Note string `json:"note"`
}

// NoteResponse HTTP response model
type NoteResponse struct {
	ID            int64     `json:"id"`
	CustomerEmail string    `json:"customerEmail"`
	Note          string    `json:"note"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDomainNote конвертирует domain модель в DTO
func FromDomainNote(n *domain.CustomerNote) *NoteResponse {
	return &NoteResponse{
		ID:            n.ID,
		CustomerEmail: n.CustomerEmail,
		Note:          n.Note,
		CreatedBy:     n.CreatedBy,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}
