package request

type ReviewKYCRequest struct {
	Status string `json:"status" binding:"required,oneof=verified rejected"`
	Notes  string `json:"notes" binding:"max=2000"`
}
