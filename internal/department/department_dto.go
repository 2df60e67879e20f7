package department

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Archived"`
}

type CreateDesignationRequest struct {
	Title string `json:"title" binding:"required"`
}

type DepartmentResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	Status       string                `json:"status"`
	Designations []DesignationResponse `json:"designations,omitempty"`
}

type DesignationResponse struct {
	ID           string `json:"id"`
	DepartmentID string `json:"departmentId"`
	Title        string `json:"title"`
	Status       string `json:"status"`
}
