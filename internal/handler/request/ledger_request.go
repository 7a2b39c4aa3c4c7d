package request

type CreateAccountRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Code        string  `json:"code" binding:"required,min=1,max=20"`
	AccountType string  `json:"account_type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID    *uint64 `json:"parent_id"`
}

type TransactionEntry struct {
	AccountID uint64 `json:"account_id" binding:"required"`
	EntryType string `json:"entry_type" binding:"required,oneof=DEBIT CREDIT debit credit"`
	Amount    string `json:"amount" binding:"required"`
}

type CreateTransactionRequest struct {
	Reference   string             `json:"reference" binding:"required,min=1,max=50"`
	Description string             `json:"description" binding:"required"`
	Date        string             `json:"date" binding:"required,datetime=2006-01-02"`
	Entries     []TransactionEntry `json:"entries" binding:"required,min=2,dive"`
}
