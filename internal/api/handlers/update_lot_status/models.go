package update_lot_status

// UpdateLotStatusRequest HTTP request model
type UpdateLotStatusRequest struct {
	Status string `json:"status"`
}
