package user

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"
	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/yacinecs/wallet-backend/services/monitoring/logging"
	"github.com/yacinecs/wallet-backend/services/wallet"
	"github.com/yacinecs/wallet-backend/utils"
)

type UserService struct {
	store   *db.Store
	logger  *logging.Logger
	wallets *wallet.WalletService
}

func NewUserService(store *db.Store, logger *logging.Logger, wallets *wallet.WalletService) *UserService {
	return &UserService{
		store:   store,
		logger:  logger,
		wallets: wallets,
	}
}

// RegisterResult carries the freshly created user and its zero-balance
// wallet out of the registration transaction.
type RegisterResult struct {
	User   db.User
	Wallet db.Wallet
}

// Register creates the user and its wallet in one transaction so a partial
// signup can never leave a user without a ledger account.
func (u *UserService) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	hashed, err := utils.GenerateHashValue(password)
	if err != nil {
		return nil, err
	}

	var result RegisterResult
	err = u.store.ExecTx(ctx, func(q db.Querier) error {
		newUser, err := q.CreateUser(ctx, db.CreateUserParams{
			Email:        email,
			PasswordHash: hashed,
		})
		if err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
				return ErrUserAlreadyExists
			}
			return err
		}

		newWallet, err := u.wallets.CreateWallet(ctx, q, newUser.ID)
		if err != nil {
			return err
		}

		result.User = newUser
		result.Wallet = *newWallet
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("registered user", result.User.ID)
	return &result, nil
}

// Authenticate verifies the password against the stored bcrypt hash. A
// missing user and a wrong password return the same error so the endpoint
// does not leak which emails exist.
func (u *UserService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	dbUser, err := u.store.GetUserByEmail(ctx, email)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if err := utils.VerifyHashValue(password, dbUser.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &dbUser, nil
}

func (u *UserService) FetchUserByID(ctx context.Context, id int64) (*db.User, error) {
	dbUser, err := u.store.GetUserByID(ctx, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &dbUser, nil
}

func (u *UserService) FetchUserByEmail(ctx context.Context, email string) (*db.User, error) {
	dbUser, err := u.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &dbUser, nil
}
