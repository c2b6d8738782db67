package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yacinecs/wallet-backend/providers"
	"github.com/yacinecs/wallet-backend/services/security"
	"github.com/yacinecs/wallet-backend/utils"
)

// ERC20 function selectors and the Transfer event topic, keccak-derived
// from the canonical signatures.
const (
	selectorBalanceOf = "0x70a08231"
	selectorDecimals  = "0x313ce567"
	selectorSymbol    = "0x95d89b41"
	transferTopic     = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
)

const (
	defaultScanChunkSize = 500
	defaultMaxScanChunks = 20
	tokenMetaCacheKey    = "chain:token:metadata"
)

var (
	ErrInvalidAddress  = errors.New("invalid chain address")
	ErrReceiptNotFound = errors.New("transaction receipt not yet available")
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type TokenMeta struct {
	Symbol   string
	Decimals uint8
}

type ChainProvider struct {
	*providers.BaseProvider
	signer *providers.BaseProvider
	config *utils.ChainConfig
	cache  *security.Cache
	nextID int64
}

func NewChainProvider(cache *security.Cache) (*ChainProvider, error) {
	config := utils.ChainConfig{}
	if err := utils.LoadCustomConfig(utils.EnvPath, &config); err != nil {
		return nil, fmt.Errorf("failed to load chain config: %w", err)
	}

	if config.RPCURL == "" || config.TokenContract == "" {
		return nil, fmt.Errorf("chain rpc url and token contract must be configured")
	}
	if !addressPattern.MatchString(config.TokenContract) {
		return nil, fmt.Errorf("token contract is not a valid address: %s", config.TokenContract)
	}
	if config.ScanChunkSize == 0 {
		config.ScanChunkSize = defaultScanChunkSize
	}
	if config.MaxScanChunks == 0 {
		config.MaxScanChunks = defaultMaxScanChunks
	}

	return &ChainProvider{
		BaseProvider: &providers.BaseProvider{
			Name:    providers.ChainRPC,
			BaseURL: config.RPCURL,
			Client:  &http.Client{Timeout: 30 * time.Second},
		},
		signer: &providers.BaseProvider{
			Name:    providers.Signer,
			BaseURL: config.SignerURL,
			APIKey:  config.SignerAPIKey,
			Client:  &http.Client{Timeout: 60 * time.Second},
		},
		config: &config,
		cache:  cache,
	}, nil
}

// rpcCall performs a single JSON-RPC request and decodes the result into
// out. The request carries the caller's context so balance reads and log
// scans respect HTTP deadlines.
func (p *ChainProvider) rpcCall(ctx context.Context, method string, params []interface{}, out interface{}) error {
	payload := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      int(atomic.AddInt64(&p.nextID, 1)),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("chain rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chain rpc returned status %d", resp.StatusCode)
	}

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("chain rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return fmt.Errorf("failed to decode rpc result: %w", err)
		}
	}
	return nil
}

func (p *ChainProvider) ethCall(ctx context.Context, data string) (string, error) {
	var result string
	err := p.rpcCall(ctx, "eth_call", []interface{}{
		callParams{To: p.config.TokenContract, Data: data},
		"latest",
	}, &result)
	return result, err
}

// TokenMetadata reads the contract's symbol and decimals. They never
// change for a deployed ERC20, so the first read is cached for the life
// of the process.
func (p *ChainProvider) TokenMetadata(ctx context.Context) (*TokenMeta, error) {
	if cached, err := p.cache.Get(tokenMetaCacheKey); err == nil {
		if meta, ok := cached.(*TokenMeta); ok {
			return meta, nil
		}
	}

	rawDecimals, err := p.ethCall(ctx, selectorDecimals)
	if err != nil {
		return nil, fmt.Errorf("decimals call failed: %w", err)
	}
	decimalsBig, err := hexToBig(rawDecimals)
	if err != nil {
		return nil, err
	}

	rawSymbol, err := p.ethCall(ctx, selectorSymbol)
	if err != nil {
		return nil, fmt.Errorf("symbol call failed: %w", err)
	}
	symbol, err := decodeABIString(rawSymbol)
	if err != nil {
		return nil, err
	}

	meta := &TokenMeta{
		Symbol:   symbol,
		Decimals: uint8(decimalsBig.Uint64()),
	}
	p.cache.InsertForever(tokenMetaCacheKey, meta)
	return meta, nil
}

// GetTokenBalance returns the address's ERC20 balance, both raw and
// formatted with the token's decimals.
func (p *ChainProvider) GetTokenBalance(ctx context.Context, address string) (*TokenBalance, error) {
	if !addressPattern.MatchString(address) {
		return nil, ErrInvalidAddress
	}

	meta, err := p.TokenMetadata(ctx)
	if err != nil {
		return nil, err
	}

	result, err := p.ethCall(ctx, selectorBalanceOf+padAddress(address))
	if err != nil {
		return nil, fmt.Errorf("balanceOf call failed: %w", err)
	}
	raw, err := hexToBig(result)
	if err != nil {
		return nil, err
	}

	return &TokenBalance{
		Address:   address,
		Symbol:    meta.Symbol,
		Decimals:  meta.Decimals,
		Raw:       raw.String(),
		Formatted: formatUnits(raw, meta.Decimals),
	}, nil
}

// BlockNumber returns the current chain head.
func (p *ChainProvider) BlockNumber(ctx context.Context) (uint64, error) {
	var result string
	if err := p.rpcCall(ctx, "eth_blockNumber", []interface{}{}, &result); err != nil {
		return 0, err
	}
	head, err := hexToBig(result)
	if err != nil {
		return 0, err
	}
	return head.Uint64(), nil
}

// ListTransferEvents scans the token's Transfer logs touching address in
// either direction. Remote nodes cap the block range per eth_getLogs
// query, so the scan walks backwards from toBlock in bounded windows and
// stops after MaxScanChunks. Results come back ascending by block.
func (p *ChainProvider) ListTransferEvents(ctx context.Context, address string, fromBlock, toBlock uint64) ([]TransferEvent, error) {
	if !addressPattern.MatchString(address) {
		return nil, ErrInvalidAddress
	}

	if toBlock == 0 {
		head, err := p.BlockNumber(ctx)
		if err != nil {
			return nil, err
		}
		toBlock = head
	}
	if fromBlock > toBlock {
		return nil, fmt.Errorf("from_block %d is past to_block %d", fromBlock, toBlock)
	}

	meta, err := p.TokenMetadata(ctx)
	if err != nil {
		return nil, err
	}

	paddedAddr := "0x" + padAddress(address)
	seen := make(map[string]bool)
	var events []TransferEvent

	chunkEnd := toBlock
	for chunk := 0; chunk < p.config.MaxScanChunks; chunk++ {
		var chunkStart uint64
		if chunkEnd >= p.config.ScanChunkSize {
			chunkStart = chunkEnd - p.config.ScanChunkSize + 1
		}
		if chunkStart < fromBlock {
			chunkStart = fromBlock
		}

		// Two filters per window: transfers sent by the address and
		// transfers received by it.
		filters := [][]string{
			{transferTopic, paddedAddr},
			{transferTopic, "", paddedAddr},
		}
		for _, topics := range filters {
			var logs []rpcLog
			err := p.rpcCall(ctx, "eth_getLogs", []interface{}{
				logFilter{
					FromBlock: toHexBlock(chunkStart),
					ToBlock:   toHexBlock(chunkEnd),
					Address:   p.config.TokenContract,
					Topics:    topicsFilter(topics),
				},
			}, &logs)
			if err != nil {
				return nil, fmt.Errorf("log scan failed for blocks %d-%d: %w", chunkStart, chunkEnd, err)
			}

			for _, l := range logs {
				key := l.TxHash + ":" + l.LogIndex
				if seen[key] {
					continue
				}
				seen[key] = true

				event, err := decodeTransferLog(&l, address, meta)
				if err != nil {
					return nil, err
				}
				events = append(events, *event)
			}
		}

		if chunkStart <= fromBlock {
			break
		}
		chunkEnd = chunkStart - 1
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].BlockNumber < events[j].BlockNumber
	})
	return events, nil
}

// GetTransactionReceipt fetches the receipt for a broadcast transaction.
// A null result means the transaction is still pending and maps to
// ErrReceiptNotFound so the poller can retry.
func (p *ChainProvider) GetTransactionReceipt(ctx context.Context, txHash string) (*TxReceipt, error) {
	var receipt *TxReceipt
	if err := p.rpcCall(ctx, "eth_getTransactionReceipt", []interface{}{txHash}, &receipt); err != nil {
		return nil, err
	}
	if receipt == nil || receipt.TxHash == "" {
		return nil, ErrReceiptNotFound
	}
	return receipt, nil
}

// SendToken asks the signer sidecar to sign and broadcast an ERC20
// transfer from the custodial account. The amount is converted to raw
// token units with the contract's decimals before it leaves the process.
func (p *ChainProvider) SendToken(ctx context.Context, toAddress string, amount decimal.Decimal) (*SendResult, error) {
	if !addressPattern.MatchString(toAddress) {
		return nil, ErrInvalidAddress
	}
	if p.signer.BaseURL == "" {
		return nil, fmt.Errorf("signer sidecar is not configured")
	}

	meta, err := p.TokenMetadata(ctx)
	if err != nil {
		return nil, err
	}
	rawAmount := amount.Shift(int32(meta.Decimals))
	if rawAmount.Exponent() < 0 {
		return nil, fmt.Errorf("amount has more precision than the token supports")
	}

	resp, err := p.signer.MakeRequest(http.MethodPost, p.signer.BaseURL+"/v1/transfer", signerSendRequest{
		To:       toAddress,
		Contract: p.config.TokenContract,
		Amount:   rawAmount.String(),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("signer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var sendResp signerSendResponse
	if err := json.Unmarshal(body, &sendResp); err != nil {
		return nil, fmt.Errorf("failed to decode signer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || sendResp.Error != "" {
		return nil, fmt.Errorf("signer rejected transfer (status %d): %s", resp.StatusCode, sendResp.Error)
	}
	if sendResp.TxHash == "" {
		return nil, fmt.Errorf("signer returned no transaction hash")
	}

	return &SendResult{
		TxHash: sendResp.TxHash,
		Status: "pending",
	}, nil
}

func decodeTransferLog(l *rpcLog, address string, meta *TokenMeta) (*TransferEvent, error) {
	if len(l.Topics) < 3 {
		return nil, fmt.Errorf("malformed transfer log in tx %s", l.TxHash)
	}

	raw, err := hexToBig(l.Data)
	if err != nil {
		return nil, err
	}
	blockNumber, err := hexToBig(l.BlockNumber)
	if err != nil {
		return nil, err
	}

	from := topicToAddress(l.Topics[1])
	to := topicToAddress(l.Topics[2])

	direction := "in"
	if strings.EqualFold(from, address) {
		direction = "out"
	}

	return &TransferEvent{
		TxHash:      l.TxHash,
		BlockNumber: blockNumber.Uint64(),
		From:        from,
		To:          to,
		Raw:         raw.String(),
		Formatted:   formatUnits(raw, meta.Decimals),
		Direction:   direction,
	}, nil
}

// topicsFilter converts the positional topic list into the getLogs wire
// shape, where an empty position means "match anything".
func topicsFilter(topics []string) [][]string {
	out := make([][]string, len(topics))
	for i, t := range topics {
		if t == "" {
			out[i] = nil
		} else {
			out[i] = []string{t}
		}
	}
	return out
}

func padAddress(address string) string {
	stripped := strings.ToLower(strings.TrimPrefix(address, "0x"))
	return strings.Repeat("0", 64-len(stripped)) + stripped
}

func topicToAddress(topic string) string {
	stripped := strings.TrimPrefix(topic, "0x")
	if len(stripped) < 40 {
		return "0x" + stripped
	}
	return "0x" + stripped[len(stripped)-40:]
}

func hexToBig(value string) (*big.Int, error) {
	stripped := strings.TrimPrefix(value, "0x")
	if stripped == "" {
		return big.NewInt(0), nil
	}
	out, ok := new(big.Int).SetString(stripped, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex quantity: %s", value)
	}
	return out, nil
}

func toHexBlock(block uint64) string {
	return fmt.Sprintf("0x%x", block)
}

func formatUnits(raw *big.Int, decimals uint8) string {
	return decimal.NewFromBigInt(raw, -int32(decimals)).String()
}

// decodeABIString unpacks a dynamic string return value: a 32-byte
// offset, a 32-byte length, then the bytes themselves.
func decodeABIString(data string) (string, error) {
	stripped := strings.TrimPrefix(data, "0x")
	if len(stripped) < 128 {
		return "", fmt.Errorf("abi string response too short")
	}

	length, err := hexToBig("0x" + stripped[64:128])
	if err != nil {
		return "", err
	}
	start := 128
	end := start + int(length.Uint64())*2
	if end > len(stripped) {
		return "", fmt.Errorf("abi string length out of range")
	}

	decoded := make([]byte, length.Uint64())
	for i := range decoded {
		b, err := hexToBig("0x" + stripped[start+i*2:start+i*2+2])
		if err != nil {
			return "", err
		}
		decoded[i] = byte(b.Uint64())
	}
	return string(decoded), nil
}
