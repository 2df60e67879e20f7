package document

type CreateDocumentRequest struct {
	DocumentType string `json:"documentType" binding:"required"`
	Title        string `json:"title" binding:"required"`
	FilePath     string `json:"filePath"`
	Remarks      string `json:"remarks"`
}

// RequestDocumentRequest is HR asking an employee to submit a document.
type RequestDocumentRequest struct {
	EmployeeID   string `json:"employeeId" binding:"required,uuid"`
	DocumentType string `json:"documentType" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Remarks      string `json:"remarks"`
}

type ReviewDocumentRequest struct {
	Remarks string `json:"remarks"`
}

type SubmitDocumentRequest struct {
	FilePath string `json:"filePath" binding:"required"`
}

type DocumentResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	DocumentType  string  `json:"documentType"`
	Title         string  `json:"title"`
	FilePath      string  `json:"filePath,omitempty"`
	Remarks       string  `json:"remarks,omitempty"`
	Status        string  `json:"status"`
	IsHRRequested bool    `json:"isHrRequested"`
	ReviewedBy    *string `json:"reviewedBy,omitempty"`
}
