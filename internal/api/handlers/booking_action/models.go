package booking_action

// Действия администратора над бронированием
const (
	ActionConfirm  = "confirm"
	ActionComplete = "complete"
	ActionNoShow   = "no-show"
	ActionCancel   = "cancel"
)

// ActionRequest HTTP request model, тело нужно только для cancel
type ActionRequest struct {
	Reason string `json:"reason"`
}
