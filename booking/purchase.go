package booking

import (
	"errors"

	"busx-cli/model"
)

// PurchaseStatus tracks the lifecycle of one purchase submission.
type PurchaseStatus int

const (
	PurchaseIdle PurchaseStatus = iota
	PurchasePending
	PurchaseSucceeded
	PurchaseFailed
)

var (
	// ErrPurchaseInFlight rejects a second submit while one is pending.
	ErrPurchaseInFlight = errors.New("booking: purchase already in flight")
	// ErrAlreadyPurchased rejects resubmitting a confirmed sale.
	ErrAlreadyPurchased = errors.New("booking: tickets already purchased")
)

// Purchase wraps the asynchronous sale call with pending/success/failure
// bookkeeping and a once-only guard. At most one submission is in flight
// at a time; after a confirmed sale every further Begin is rejected
// client-side, so the remote service is never hit twice for one booking.
type Purchase struct {
	status  PurchaseStatus
	result  model.TicketSaleResponse
	hasRes  bool
	lastErr error
}

// Status returns the current submission state.
func (p *Purchase) Status() PurchaseStatus { return p.status }

// Begin validates the snapshot locally and marks the submission pending.
// The remote call must only be fired when Begin returns nil.
func (p *Purchase) Begin(req model.TicketSaleRequest) error {
	switch p.status {
	case PurchasePending:
		return ErrPurchaseInFlight
	case PurchaseSucceeded:
		return ErrAlreadyPurchased
	}
	if err := ValidateSaleRequest(req); err != nil {
		return err
	}
	p.status = PurchasePending
	p.lastErr = nil
	return nil
}

// Resolve records the remote response. ok=false is a domain rejection:
// the response is kept for display and the purchase may be retried.
func (p *Purchase) Resolve(res model.TicketSaleResponse) {
	if p.status != PurchasePending {
		return
	}
	p.result = res
	p.hasRes = true
	if res.OK {
		p.status = PurchaseSucceeded
		return
	}
	p.status = PurchaseFailed
}

// Fail records a transport-level failure, distinct from a domain
// rejection. The purchase may be retried.
func (p *Purchase) Fail(err error) {
	if p.status != PurchasePending {
		return
	}
	p.status = PurchaseFailed
	p.lastErr = err
}

// Result returns the last remote response, if one arrived. After a domain
// rejection this carries ok=false and the service's message.
func (p *Purchase) Result() (model.TicketSaleResponse, bool) {
	return p.result, p.hasRes
}

// Err returns the transport error of the last attempt, if any.
func (p *Purchase) Err() error { return p.lastErr }

// FailureMessage renders the last failure for display, whether it came
// from the service (domain) or from the transport.
func (p *Purchase) FailureMessage() string {
	if p.status != PurchaseFailed {
		return ""
	}
	if p.lastErr != nil {
		return p.lastErr.Error()
	}
	if p.hasRes && p.result.Message != "" {
		return p.result.Message
	}
	return "purchase failed"
}

// CanRetry reports whether another submission attempt is allowed.
func (p *Purchase) CanRetry() bool {
	return p.status == PurchaseIdle || p.status == PurchaseFailed
}
