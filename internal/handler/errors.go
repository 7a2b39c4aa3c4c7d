package handler

import (
	"errors"

	"ledger-core/internal/service"
	"ledger-core/pkg/errno"
)

// decodeBizError 把 Service 层的哨兵错误翻译成带业务码的 Errno，
// 未识别的错误原样返回，交给 errno.Decode 兜底为 InternalServerError
func decodeBizError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return errno.ErrUserAlreadyExist
	case errors.Is(err, service.ErrUserNotFound):
		return errno.ErrUserNotFound
	case errors.Is(err, service.ErrBadCredentials):
		return errno.ErrPasswordIncorrect
	case errors.Is(err, service.ErrWrongOldPassword):
		return errno.ErrPasswordIncorrect.WithMessage("Old password is incorrect")
	case errors.Is(err, service.ErrBadResetToken):
		return errno.ErrResetTokenInvalid

	case errors.Is(err, service.ErrKYCNotFound):
		return errno.ErrKYCNotFound
	case errors.Is(err, service.ErrKYCAlreadyVerified):
		return errno.ErrKYCVerified
	case errors.Is(err, service.ErrKYCFileTooLarge):
		return errno.ErrKYCFileTooLarge
	case errors.Is(err, service.ErrKYCBadFileType):
		return errno.ErrKYCFileType
	case errors.Is(err, service.ErrKYCBadDocType):
		return errno.ErrBind.WithMessage("Unsupported document type")
	case errors.Is(err, service.ErrKYCBadStatus):
		return errno.ErrBind.WithMessage("Review status must be verified or rejected")

	case errors.Is(err, service.ErrTicketNotFound):
		return errno.ErrTicketNotFound
	case errors.Is(err, service.ErrNotificationNotFound):
		return errno.ErrNotificationNotFound

	case errors.Is(err, service.ErrDepositNotFound):
		return errno.ErrDepositNotFound
	case errors.Is(err, service.ErrUnsupportedCoin):
		return errno.ErrUnsupportedCoin
	case errors.Is(err, service.ErrDepositRejected):
		return errno.ErrDepositRejected
	case errors.Is(err, service.ErrDepositNotPending):
		return errno.ErrDepositNotPending

	case errors.Is(err, service.ErrInsufficientBalance):
		return errno.ErrInsufficientBalance
	case errors.Is(err, service.ErrInvalidAmount):
		return errno.ErrInvalidAmount

	case errors.Is(err, service.ErrAccountNotFound):
		return errno.ErrAccountNotFound
	case errors.Is(err, service.ErrAccountCodeTaken):
		return errno.ErrDuplicateReference.WithMessage("Account code already exists")
	case errors.Is(err, service.ErrBadAccountType):
		return errno.ErrBind.WithMessage("Invalid account type")
	case errors.Is(err, service.ErrNoEntries):
		return errno.ErrTooFewEntries
	case errors.Is(err, service.ErrBadEntryType):
		return errno.ErrBind.WithMessage("Entry type must be DEBIT or CREDIT")
	case errors.Is(err, service.ErrBadEntryAmount):
		return errno.ErrInvalidAmount
	case errors.Is(err, service.ErrUnbalancedEntries):
		return errno.ErrUnbalancedEntries
	case errors.Is(err, service.ErrReferenceTaken):
		return errno.ErrDuplicateReference
	case errors.Is(err, service.ErrInactiveAccount):
		return errno.ErrAccountNotFound.WithMessage("Account is inactive")
	}
	return err
}
