package request

type CreateTicketRequest struct {
	Department string `json:"department" binding:"required,oneof=technical billing account kyc trading general"`
	Subject    string `json:"subject" binding:"required,min=3,max=255"`
	Message    string `json:"message" binding:"required,min=1"`
}

type TicketReplyRequest struct {
	Message string `json:"message" binding:"required,min=1"`
}

type AdminTicketReplyRequest struct {
	Message    string `json:"message" binding:"required,min=1"`
	IsInternal bool   `json:"is_internal"`
	Status     string `json:"status" binding:"omitempty,oneof=open in_progress waiting_for_user closed"`
}
