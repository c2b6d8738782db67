package models

import "github.com/shopspring/decimal"

type CustodialSendParams struct {
	ToAddress string          `json:"to_address" binding:"required,chainaddress"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

type RecordDepositParams struct {
	TxHash string          `json:"tx_hash" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type CustodialSendResponse struct {
	TxHash      string               `json:"tx_hash"`
	Status      string               `json:"status"`
	Wallet      *WalletResponse      `json:"wallet"`
	Transaction *TransactionResponse `json:"transaction"`
}
