package account

// CreateAccountRequest is the request body for creating an account inside a
// namespace.
type CreateAccountRequest struct {
	NamespaceID string `json:"namespace_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=50"`
	Currency    string `json:"currency" validate:"required,len=3"`
}

// RenameAccountRequest is the request body for renaming an account.
type RenameAccountRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// PostingRequest is the request body shared by deposits and withdrawals.
// The amount is in major units of the given currency, which must match the
// account's currency.
type PostingRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	Description string  `json:"description" validate:"max=255"`
}

// TransferRequest is the request body for a transfer out of the account in
// the URL. For cross-currency transfers both amounts are required; for
// same-currency transfers the destination amount may be omitted and defaults
// to the source amount.
type TransferRequest struct {
	DestinationAccountID string   `json:"destination_account_id" validate:"required,uuid"`
	SourceAmount         float64  `json:"source_amount" validate:"required,gt=0"`
	DestinationAmount    *float64 `json:"destination_amount" validate:"omitempty,gt=0"`
	Description          string   `json:"description" validate:"max=255"`
}
