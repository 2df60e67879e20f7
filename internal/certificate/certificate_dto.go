package certificate

type CreateCertificateRequest struct {
	CertificateType string `json:"certificateType" binding:"required"`
	Purpose         string `json:"purpose" binding:"required"`
}

type ReviewCertificateRequest struct {
	Remarks string `json:"remarks"`
}

type CertificateResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employeeId"`
	CertificateType string  `json:"certificateType"`
	Purpose         string  `json:"purpose"`
	Remarks         string  `json:"remarks,omitempty"`
	Status          string  `json:"status"`
	ReviewedBy      *string `json:"reviewedBy,omitempty"`
}
