package apistrings

const (
	/// Basic User Related Strings
	UserNotFound           = "user or account does not exist"
	UserAlreadyCreated     = "email already exists"
	InvalidEmail           = "invalid email address, please check submitted email address"
	InvalidEmailPassInput  = "please enter a valid email and password"
	IncorrectEmailPass     = "incorrect email or password"
	PasswordTooShort       = "password must be at least 8 characters"
	UnauthorizedRequest    = "unauthorized request"
	RecipientNotFound      = "recipient account does not exist"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Wallet Related Strings
	UserNoWallet         = "user does not have a wallet created"
	InvalidAmountInput   = "check 'amount' key, amount must be a positive value with at most two decimal places"
	InsufficientBalance  = "insufficient balance for this operation"
	SelfTransfer         = "cannot transfer funds to your own wallet"
	InvalidTransactionID = "entered ID is invalid"
	TransactionNotFound  = "transaction does not exist"

	/// Chain Related Strings
	InvalidChainAddress  = "invalid chain address, expected a 0x-prefixed hex address"
	InvalidSendInput     = "check 'to_address' and 'amount' keys, invalid request"
	InvalidDepositInput  = "check 'tx_hash' and 'amount' keys, invalid request"
	InvalidBlockRange    = "invalid block range, from_block must not exceed to_block"
	DepositNotConfirmed  = "deposit transaction is not yet confirmed on chain"
	DepositFailed        = "deposit transaction failed on chain"
	DepositAlreadyExists = "deposit has already been credited"
	SendRejected         = "custodial send was rejected, funds were not moved"
)
