package employee

type CreateEmployeeRequest struct {
	EmployeeID   string `json:"employee_id"`
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"omitempty,oneof=employee hr mis"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	HireDate     string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email" binding:"omitempty,email"`
	Role         string `json:"role" binding:"omitempty,oneof=employee hr mis"`
	Status       string `json:"status" binding:"omitempty,oneof=Active Inactive Terminated 'On Leave' Resigned Retired"`
	DepartmentID string `json:"department_id" binding:"omitempty,uuid"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	IsSuspended  *bool  `json:"is_suspended"`
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	IsSuspended  bool   `json:"is_suspended"`
	DepartmentID string `json:"department_id,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	HireDate     string `json:"hire_date"`
}
