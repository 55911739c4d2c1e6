// Package service holds the café business flows: starting and checking
// out a computer session, and editing the food order of an open session.
//
// Services validate state through the repositories and answer with
// *errs.HTTPError for failures the caller can act on. Store errors are
// returned unchanged.
package service

import (
	"fmt"

	"github.com/deppfellow/netcafe/internal/errs"
)

var (
	codeComputerNotFound     = "COMPUTER_NOT_FOUND"
	codeComputerNotAvailable = "COMPUTER_NOT_AVAILABLE"
	codeBillingAlreadyOpen   = "BILLING_ALREADY_OPEN"
	codeNoOpenBilling        = "NO_OPEN_BILLING"
	codeBillingNotFound      = "BILLING_NOT_FOUND"
	codeBillingClosed        = "BILLING_ALREADY_CLOSED"
	codeInvalidCount         = "INVALID_COUNT"
)

func computerNotFound(id int16) *errs.HTTPError {
	return errs.NewNotFoundError(fmt.Sprintf("Computer %d not found", id), true, &codeComputerNotFound)
}

func noOpenBilling(id int16) *errs.HTTPError {
	return errs.NewBadRequestError(fmt.Sprintf("Computer %d has no open billing", id), true, &codeNoOpenBilling, nil)
}
