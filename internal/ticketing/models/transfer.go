package models

import (
	id "ticketledger/pkg/domain"
)

// TransferRecord is one settlement leg of a purchase. The buyer is debited
// once for the full total; these records denote destination accounting only
// and must never be replayed as additional debits.
type TransferRecord struct {
	Amount int64        `json:"amount"`
	From   id.Principal `json:"from"`
	To     id.Principal `json:"to"`
}

// NFTMint is the notification sent to the external token registry after a
// successful purchase.
type NFTMint struct {
	TicketID id.TicketID  `json:"ticket_id"`
	Buyer    id.Principal `json:"buyer"`
	EventID  id.EventID   `json:"event_id"`
}

// PurchaseReceipt is returned from a successful purchase. Transfers carries
// the escrow and fee legs so callers can account for the single debit without
// re-deriving the split.
type PurchaseReceipt struct {
	TicketID  id.TicketID      `json:"ticket_id"`
	Quote     Quote            `json:"quote"`
	Transfers []TransferRecord `json:"transfers"`
}
