package contract

type CreateContractRequest struct {
	EmployeeID     string `json:"employeeId" binding:"required,uuid"`
	ContractType   string `json:"contractType" binding:"required,oneof=permanent contractual part-time job-order"`
	StartDate      string `json:"startDate" binding:"required"`
	EndDate        string `json:"endDate"`
	Position       string `json:"position" binding:"required"`
	Department     string `json:"department" binding:"required"`
	WorkSchedule   string `json:"workSchedule"`
	ProjectDetails string `json:"projectDetails"`
}

type RenewContractRequest struct {
	StartDate      string `json:"startDate" binding:"required"`
	EndDate        string `json:"endDate" binding:"required"`
	WorkSchedule   string `json:"workSchedule"`
	ProjectDetails string `json:"projectDetails"`
}

type TerminateContractRequest struct {
	TerminationReason string `json:"terminationReason"`
}

type ContractResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employeeId"`
	ContractType       string  `json:"contractType"`
	Position           string  `json:"position"`
	Department         string  `json:"department"`
	StartDate          string  `json:"startDate"`
	EndDate            *string `json:"endDate,omitempty"`
	WorkSchedule       string  `json:"workSchedule,omitempty"`
	ProjectDetails     string  `json:"projectDetails,omitempty"`
	Status             string  `json:"status"`
	TerminationReason  string  `json:"terminationReason,omitempty"`
	RenewalCount       int     `json:"renewalCount"`
	PreviousContractID *string `json:"previousContractId,omitempty"`
}

type SweepResult struct {
	ExpiredCount int             `json:"expiredCount"`
	Details      []SweepLogEntry `json:"details"`
}

type SweepLogEntry struct {
	ContractID     string `json:"contractId"`
	EmployeeID     string `json:"employeeId"`
	EndDate        string `json:"endDate"`
	StatusRestored bool   `json:"statusRestored"`
}
