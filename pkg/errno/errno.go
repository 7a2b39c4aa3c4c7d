package errno

import "fmt"

// Errno defines the error code logic
type Errno struct {
	Code    int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// WithMessage returns a copy of the Errno carrying a more specific message
func (e Errno) WithMessage(msg string) Errno {
	return Errno{Code: e.Code, Message: msg}
}

// WithMessagef formats a more specific message
func (e Errno) WithMessagef(format string, args ...interface{}) Errno {
	return Errno{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// Decode tries to convert an error to Errno
func Decode(err error) (int, string) {
	if err == nil {
		return OK.Code, OK.Message
	}

	switch typed := err.(type) {
	case *Errno:
		return typed.Code, typed.Message
	case Errno:
		return typed.Code, typed.Message
	default:
		return InternalServerError.Code, err.Error()
	}
}

// Common Errors
var (
	OK                  = Errno{Code: 0, Message: "Success"}
	InternalServerError = Errno{Code: 10001, Message: "Internal server error"}
	ErrBind             = Errno{Code: 10002, Message: "Error occurred while binding the request body to the struct"}
	ErrTokenInvalid     = Errno{Code: 10003, Message: "Token invalid"}
	ErrDatabase         = Errno{Code: 10004, Message: "Database error"}
	ErrForbidden        = Errno{Code: 10005, Message: "Permission denied"}
)

// Business Errors (20000+)
var (
	ErrUserNotFound      = Errno{Code: 20101, Message: "User not found"}
	ErrUserAlreadyExist  = Errno{Code: 20102, Message: "User with this email already exists"}
	ErrPasswordIncorrect = Errno{Code: 20103, Message: "Invalid email or password"}
	ErrResetTokenInvalid = Errno{Code: 20104, Message: "Invalid or expired reset token"}

	ErrKYCNotFound     = Errno{Code: 20201, Message: "KYC verification not found"}
	ErrKYCVerified     = Errno{Code: 20202, Message: "Your documents have already been verified"}
	ErrKYCFileTooLarge = Errno{Code: 20203, Message: "File size cannot exceed 5MB"}
	ErrKYCFileType     = Errno{Code: 20204, Message: "Only JPG, PNG, GIF, and PDF files are allowed"}

	ErrTicketNotFound = Errno{Code: 20301, Message: "Support ticket not found"}

	ErrNotificationNotFound = Errno{Code: 20401, Message: "Notification not found"}

	ErrDepositNotFound   = Errno{Code: 20501, Message: "Deposit transaction not found"}
	ErrUnsupportedCoin   = Errno{Code: 20502, Message: "Unsupported coin type"}
	ErrDepositRejected   = Errno{Code: 20503, Message: "Deposit has been rejected"}
	ErrDepositNotPending = Errno{Code: 20504, Message: "Deposit is not in pending state"}

	ErrInsufficientBalance = Errno{Code: 20601, Message: "Insufficient balance"}
	ErrInvalidAmount       = Errno{Code: 20602, Message: "Amount must be a positive decimal"}

	ErrAccountNotFound     = Errno{Code: 20701, Message: "Ledger account not found"}
	ErrUnbalancedEntries   = Errno{Code: 20702, Message: "Debit and credit entries must balance"}
	ErrTooFewEntries       = Errno{Code: 20703, Message: "A transaction requires at least two journal entries"}
	ErrTransactionNotFound = Errno{Code: 20704, Message: "Ledger transaction not found"}
	ErrDuplicateReference  = Errno{Code: 20705, Message: "Transaction reference already exists"}
)
