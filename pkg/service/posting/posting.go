// Package posting implements the transaction-posting engine: deposits,
// withdrawals, and transfers, each executed atomically against locked
// account rows inside a single unit of work.
package posting

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"finbook/pkg/currency"
	"finbook/pkg/domain"
	"finbook/pkg/domain/account"
	"finbook/pkg/domain/ledger"
	"finbook/pkg/dto"
	"finbook/pkg/money"
	"finbook/pkg/repository"

	"github.com/google/uuid"
)

// Service posts transactions. Every posting runs inside uow.Do: the account
// rows are read under write locks, mutated, and the ledger row appended, all
// committing or rolling back together.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// NewService creates the posting service.
func NewService(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// PostIn deposits into an account. The command currency must match the
// account currency exactly; deposits never convert.
func (s *Service) PostIn(ctx context.Context, cmd dto.PostIn) (tx *ledger.Transaction, err error) {
	logger := s.logger.With(
		"op", "PostIn", "userID", cmd.UserID, "accountID", cmd.AccountID)

	amount, err := parseAmount(cmd.Amount, cmd.Currency)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := lockAccount(ctx, repo, cmd.UserID, cmd.AccountID)
		if err != nil {
			return err
		}
		if acct.Currency() != amount.Currency() {
			return account.ErrCurrencyMismatch
		}

		tx, err = ledger.NewIn(cmd.UserID, acct.ID, amount, cmd.Description)
		if err != nil {
			return err
		}
		newBalance, err := acct.Credit(amount)
		if err != nil {
			return err
		}
		return s.apply(ctx, uow, tx, balanceChange{acct.ID, newBalance.Minor()})
	})
	if err != nil {
		logger.Error("deposit failed", "error", err)
		return nil, err
	}
	logger.Info("deposit posted", "txID", tx.ID, "amount", amount.String())
	return tx, nil
}

// PostOut withdraws from an account. Fails without mutating anything when
// the balance would go negative.
func (s *Service) PostOut(ctx context.Context, cmd dto.PostOut) (tx *ledger.Transaction, err error) {
	logger := s.logger.With(
		"op", "PostOut", "userID", cmd.UserID, "accountID", cmd.AccountID)

	amount, err := parseAmount(cmd.Amount, cmd.Currency)
	if err != nil {
		return nil, err
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := lockAccount(ctx, repo, cmd.UserID, cmd.AccountID)
		if err != nil {
			return err
		}
		if acct.Currency() != amount.Currency() {
			return account.ErrCurrencyMismatch
		}

		tx, err = ledger.NewOut(cmd.UserID, acct.ID, amount, cmd.Description)
		if err != nil {
			return err
		}
		newBalance, err := acct.Debit(amount)
		if err != nil {
			return err
		}
		return s.apply(ctx, uow, tx, balanceChange{acct.ID, newBalance.Minor()})
	})
	if err != nil {
		logger.Error("withdrawal failed", "error", err)
		return nil, err
	}
	logger.Info("withdrawal posted", "txID", tx.ID, "amount", amount.String())
	return tx, nil
}

// PostTransfer moves funds between two of the user's accounts. Both account
// rows are locked in ascending id order so concurrent opposing transfers
// cannot deadlock. For cross-currency transfers the effective rate pair is
// derived from the two amounts and snapshotted on the ledger row.
func (s *Service) PostTransfer(ctx context.Context, cmd dto.PostTransfer) (tx *ledger.Transaction, err error) {
	logger := s.logger.With(
		"op", "PostTransfer", "userID", cmd.UserID,
		"sourceAccountID", cmd.SourceAccountID,
		"destinationAccountID", cmd.DestinationAccountID)

	if cmd.SourceAccountID == cmd.DestinationAccountID {
		return nil, ledger.ErrSameAccount
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}

		src, dst, err := lockAccountPair(
			ctx, repo, cmd.UserID, cmd.SourceAccountID, cmd.DestinationAccountID)
		if err != nil {
			return err
		}

		sourceAmount, err := money.New(cmd.SourceAmount, src.Currency())
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		// An omitted destination amount means "same as the source" and is
		// only meaningful when the currencies match; cross-currency needs
		// both amounts to derive the rate pair.
		destinationValue := cmd.SourceAmount
		if cmd.DestinationAmount != nil {
			destinationValue = *cmd.DestinationAmount
		} else if src.Currency() != dst.Currency() {
			return ledger.ErrDestinationAmountRequired
		}
		destinationAmount, err := money.New(destinationValue, dst.Currency())
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		tx, err = ledger.NewTransfer(
			cmd.UserID, src.ID, dst.ID, sourceAmount, destinationAmount, cmd.Description)
		if err != nil {
			return err
		}

		srcBalance, err := src.Debit(sourceAmount)
		if err != nil {
			return err
		}
		dstBalance, err := dst.Credit(destinationAmount)
		if err != nil {
			return err
		}
		return s.apply(ctx, uow, tx,
			balanceChange{src.ID, srcBalance.Minor()},
			balanceChange{dst.ID, dstBalance.Minor()})
	})
	if err != nil {
		logger.Error("transfer failed", "error", err)
		return nil, err
	}
	logger.Info("transfer posted", "txID", tx.ID)
	return tx, nil
}

// GetTransaction retrieves one of the user's ledger rows.
func (s *Service) GetTransaction(ctx context.Context, userID, id uuid.UUID) (read *dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		read, err = repo.Get(ctx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return read, nil
}

// ListTransactions lists the user's ledger rows matching the filter, newest
// first. Listing never mutates state.
func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, filter dto.TransactionFilter) (list []*dto.TransactionRead, err error) {
	if filter.Type != nil && !ledger.Type(*filter.Type).IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, *filter.Type)
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		list, err = repo.List(ctx, userID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

type balanceChange struct {
	accountID    uuid.UUID
	balanceMinor int64
}

// apply writes the new balances and appends the ledger row within the
// current unit of work.
func (s *Service) apply(ctx context.Context, uow repository.UnitOfWork, tx *ledger.Transaction, changes ...balanceChange) error {
	accountRepo, err := uow.AccountRepository()
	if err != nil {
		return err
	}
	for _, c := range changes {
		if err := accountRepo.UpdateBalance(ctx, c.accountID, c.balanceMinor); err != nil {
			return err
		}
	}
	txRepo, err := uow.TransactionRepository()
	if err != nil {
		return err
	}
	return txRepo.Create(ctx, transactionToCreate(tx))
}

// parseAmount validates the command currency and converts the float amount
// to fixed-point money.
func parseAmount(amount float64, code string) (money.Money, error) {
	c := currency.Code(code)
	if !currency.IsSupported(c) {
		return money.Money{}, fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, code)
	}
	m, err := money.New(amount, c)
	if err != nil {
		return money.Money{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return m, nil
}

// lockAccount fetches an account under a row lock and hydrates the
// aggregate.
func lockAccount(ctx context.Context, repo accountRepo, userID, id uuid.UUID) (*account.Account, error) {
	read, err := repo.GetForUpdate(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return hydrate(read)
}

// lockAccountPair locks two accounts in ascending id order and returns them
// as (source, destination) regardless of lock order.
func lockAccountPair(ctx context.Context, repo accountRepo, userID, sourceID, destinationID uuid.UUID) (src, dst *account.Account, err error) {
	first, second := sourceID, destinationID
	if bytes.Compare(second[:], first[:]) < 0 {
		first, second = second, first
	}
	a, err := lockAccount(ctx, repo, userID, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := lockAccount(ctx, repo, userID, second)
	if err != nil {
		return nil, nil, err
	}
	if a.ID == sourceID {
		return a, b, nil
	}
	return b, a, nil
}

type accountRepo interface {
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error)
}

func hydrate(read *dto.AccountRead) (*account.Account, error) {
	return account.New().
		WithID(read.ID).
		WithUserID(read.UserID).
		WithNamespaceID(read.NamespaceID).
		WithName(read.Name).
		WithCurrency(currency.Code(read.Currency)).
		WithBalanceMinor(read.BalanceMinor).
		WithCreatedAt(read.CreatedAt).
		WithUpdatedAt(read.UpdatedAt).
		Build()
}

// ReadFromTransaction projects a posted transaction into its read DTO, for
// callers that need a serializable shape.
func ReadFromTransaction(tx *ledger.Transaction) *dto.TransactionRead {
	read := &dto.TransactionRead{
		ID:                   tx.ID,
		UserID:               tx.UserID,
		Type:                 string(tx.Type),
		AmountMinor:          tx.Amount.Minor(),
		Currency:             string(tx.Amount.Currency()),
		SourceRate:           tx.SourceRate,
		DestinationRate:      tx.DestinationRate,
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		Description:          tx.Description,
		CreatedAt:            tx.CreatedAt,
	}
	if tx.DestinationAmount != nil {
		minor := tx.DestinationAmount.Minor()
		code := string(tx.DestinationAmount.Currency())
		read.DestinationAmountMinor = &minor
		read.DestinationCurrency = &code
	}
	return read
}

func transactionToCreate(tx *ledger.Transaction) dto.TransactionCreate {
	create := dto.TransactionCreate{
		ID:                   tx.ID,
		UserID:               tx.UserID,
		Type:                 string(tx.Type),
		AmountMinor:          tx.Amount.Minor(),
		Currency:             string(tx.Amount.Currency()),
		SourceRate:           tx.SourceRate,
		DestinationRate:      tx.DestinationRate,
		SourceAccountID:      tx.SourceAccountID,
		DestinationAccountID: tx.DestinationAccountID,
		Description:          tx.Description,
	}
	if tx.DestinationAmount != nil {
		minor := tx.DestinationAmount.Minor()
		code := string(tx.DestinationAmount.Currency())
		create.DestinationAmountMinor = &minor
		create.DestinationCurrency = &code
	}
	return create
}
