package blockchain

import "errors"

var (
	ErrDepositNotConfirmed = errors.New("deposit transaction is not yet confirmed on chain")
	ErrDepositFailed       = errors.New("deposit transaction failed on chain")
	ErrSendRejected        = errors.New("custodial send was rejected by the signer")
)
