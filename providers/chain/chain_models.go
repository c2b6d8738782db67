package chain

import "encoding/json"

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
}

type callParams struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

type logFilter struct {
	FromBlock string     `json:"fromBlock"`
	ToBlock   string     `json:"toBlock"`
	Address   string     `json:"address"`
	Topics    [][]string `json:"topics"`
}

type rpcLog struct {
	Address     string   `json:"address"`
	Topics      []string `json:"topics"`
	Data        string   `json:"data"`
	BlockNumber string   `json:"blockNumber"`
	TxHash      string   `json:"transactionHash"`
	LogIndex    string   `json:"logIndex"`
}

// TokenBalance is the formatted result of a balanceOf call.
type TokenBalance struct {
	Address   string `json:"address"`
	Symbol    string `json:"symbol"`
	Decimals  uint8  `json:"decimals"`
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
}

// TransferEvent is one decoded ERC20 Transfer log.
type TransferEvent struct {
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	From        string `json:"from"`
	To          string `json:"to"`
	Raw         string `json:"raw"`
	Formatted   string `json:"formatted"`
	Direction   string `json:"direction"`
}

// TxReceipt is the subset of eth_getTransactionReceipt the ledger needs.
type TxReceipt struct {
	TxHash      string `json:"transactionHash"`
	BlockNumber string `json:"blockNumber"`
	Status      string `json:"status"`
}

// Succeeded reports whether the receipt's status word is 0x1.
func (r *TxReceipt) Succeeded() bool {
	return r.Status == "0x1"
}

type signerSendRequest struct {
	To       string `json:"to"`
	Contract string `json:"contract"`
	Amount   string `json:"amount"`
}

type signerSendResponse struct {
	TxHash string `json:"tx_hash"`
	Error  string `json:"error,omitempty"`
}

// SendResult is returned by SendToken once the signer has broadcast.
type SendResult struct {
	TxHash string `json:"tx_hash"`
	Status string `json:"status"`
}
