package quote_parking_price

// QuoteResponse предварительная стоимость бронирования
type QuoteResponse struct {
	LotID         int64  `json:"lotId"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	BookingClass  string `json:"bookingClass"`
	BillableHours int64  `json:"billableHours"`
	TotalAmount   string `json:"totalAmount"`
}
