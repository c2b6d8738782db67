package wallet

import "fmt"

var (
	ErrWalletNotFound      = fmt.Errorf("wallet not found")
	ErrTransactionNotFound = fmt.Errorf("transaction not found")
	ErrWalletNotPossible   = fmt.Errorf("could not create wallet")
	ErrInsufficientBalance = fmt.Errorf("insufficient balance")
	ErrInvalidAmount       = fmt.Errorf("amount must be a positive value with at most two decimal places")
	ErrSelfTransfer        = fmt.Errorf("cannot transfer to your own wallet")
	ErrAlreadyProcessed    = fmt.Errorf("chain transaction has already been credited")
)

type WalletError struct {
	ErrorObj error
	UserID   int64
	Other    []error
}

func (w *WalletError) Error() string {
	return w.ErrorObj.Error()
}

func (w *WalletError) Unwrap() error {
	return w.ErrorObj
}

func (w *WalletError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", w.ErrorObj.Error(), w.UserID)
}

func NewWalletError(err error, userID int64, e ...error) *WalletError {
	return &WalletError{
		ErrorObj: err,
		UserID:   userID,
		Other:    e,
	}
}
