package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/netcafe/internal/errs"
	"github.com/deppfellow/netcafe/internal/model"
	"github.com/deppfellow/netcafe/internal/repository"
	"github.com/deppfellow/netcafe/internal/server"
)

// SessionService opens and closes the usage sessions of computers.
type SessionService struct {
	server    *server.Server
	repos     *repository.Repositories
	computers *repository.ComputerRepository
	foods     *repository.FoodRepository
	billings  *repository.BillingRepository
}

func NewSessionService(s *server.Server, repos *repository.Repositories) *SessionService {
	return &SessionService{
		server:    s,
		repos:     repos,
		computers: repos.Computer,
		foods:     repos.Food,
		billings:  repos.Billing,
	}
}

// Start opens a session on an available computer and marks it in use,
// both in one transaction. It returns the new billing id.
func (ss *SessionService) Start(ctx context.Context, computerID int16) (int, error) {
	billingID := repository.NoBilling

	err := ss.repos.InTx(ctx, func(tx *repository.Repositories) error {
		computer, err := tx.Computer.GetByID(ctx, computerID)
		if err != nil {
			return err
		}
		if computer == nil {
			return computerNotFound(computerID)
		}
		if computer.Status != model.StatusAvailable {
			return errs.NewConflictError(
				fmt.Sprintf("Computer %d is %s", computerID, computer.Status), codeComputerNotAvailable)
		}

		open, err := tx.Food.GetUncheckBillingID(ctx, computerID)
		if err != nil {
			return err
		}
		if open != repository.NoBilling {
			return errs.NewConflictError(
				fmt.Sprintf("Computer %d already has open billing %d", computerID, open), codeBillingAlreadyOpen)
		}

		id, err := tx.Billing.OpenSession(ctx, computerID)
		if err != nil {
			return err
		}

		if _, err := tx.Computer.UpdateStatus(ctx, computerID, model.StatusInUse); err != nil {
			return fmt.Errorf("mark computer %d in use: %w", computerID, err)
		}

		billingID = id
		return nil
	})
	if err != nil {
		return repository.NoBilling, err
	}

	ss.server.Logger.Info().
		Int16("computer_id", computerID).
		Int("billing_id", billingID).
		Msg("session started")

	return billingID, nil
}

// Checkout closes the open session of a computer and frees the computer
// in one transaction, then returns the bill.
func (ss *SessionService) Checkout(ctx context.Context, computerID int16) (*model.Bill, error) {
	exists, err := ss.computers.Exists(ctx, computerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, computerNotFound(computerID)
	}

	billingID, err := ss.foods.GetUncheckBillingID(ctx, computerID)
	if err != nil {
		return nil, err
	}
	if billingID == repository.NoBilling {
		return nil, noOpenBilling(computerID)
	}

	err = ss.repos.InTx(ctx, func(tx *repository.Repositories) error {
		closed, err := tx.Billing.CloseSession(ctx, billingID)
		if err != nil {
			return err
		}
		if !closed {
			return errs.NewConflictError(
				fmt.Sprintf("Billing %d is already closed", billingID), codeBillingClosed)
		}

		if _, err := tx.Computer.UpdateStatus(ctx, computerID, model.StatusAvailable); err != nil {
			return fmt.Errorf("mark computer %d available: %w", computerID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bill, err := ss.Bill(ctx, billingID)
	if err != nil {
		return nil, err
	}

	ss.server.Logger.Info().
		Int16("computer_id", computerID).
		Int("billing_id", billingID).
		Str("total", bill.Total.StringFixed(2)).
		Msg("session checked out")

	return bill, nil
}

// Bill returns the summary of any billing, open or closed.
func (ss *SessionService) Bill(ctx context.Context, billingID int) (*model.Bill, error) {
	billing, err := ss.billings.GetBilling(ctx, billingID)
	if err != nil {
		return nil, err
	}
	if billing == nil {
		return nil, errs.NewNotFoundError(fmt.Sprintf("Billing %d not found", billingID), true, &codeBillingNotFound)
	}

	lines, err := ss.billings.Lines(ctx, billingID)
	if err != nil {
		return nil, err
	}

	bill := model.NewBill(*billing, lines)
	return &bill, nil
}

// History returns the sessions of a computer, newest first.
func (ss *SessionService) History(ctx context.Context, computerID int16) ([]model.Billing, error) {
	exists, err := ss.computers.Exists(ctx, computerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, computerNotFound(computerID)
	}
	return ss.billings.ListByComputer(ctx, computerID)
}
