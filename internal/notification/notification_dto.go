package notification

type CreateNotificationRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required"`
	Message    string `json:"message" binding:"required"`
	Category   string `json:"category"`
}

type NotificationResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Title      string  `json:"title"`
	Message    string  `json:"message"`
	Category   string  `json:"category"`
	IsRead     bool    `json:"is_read"`
	CreatedAt  string  `json:"created_at"`
	ReadAt     *string `json:"read_at,omitempty"`
}
