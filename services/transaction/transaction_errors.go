package transaction

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotOwner            = errors.New("transaction does not belong to this user")
	ErrInvalidPaging       = errors.New("invalid paging parameters")
)
