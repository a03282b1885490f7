package payments

import (
	"github.com/plazafl/backend/internal/domain/billing"
	"github.com/plazafl/backend/internal/domain/shared"
)

// PickOldestUnpaid selects the bill a standalone payment should settle:
// the oldest payable bill by bill date. The caller passes bills already
// ordered by bill date ascending; the first payable one wins. The whole
// payment lands on that single bill, even when it exceeds the remaining
// balance; nothing carries over to later bills.
func PickOldestUnpaid(bills []billing.Bill) (*billing.Bill, error) {
	for i := range bills {
		if bills[i].IsUnpaid() {
			return &bills[i], nil
		}
	}
	return nil, shared.NewDomainError("NO_UNPAID_BILLS", "Business has no unpaid bills to apply the payment to")
}
