package fiobank

import "cloud.google.com/go/civil"

// Transaction is one normalized row of an account statement. The API encodes
// rows as numbered columns; the schema table maps each column onto one of
// these fields. Pointer fields distinguish "absent from the payload" (nil)
// from a genuine zero value, so every schema field is always present in the
// record even when the raw entry omitted it.
type Transaction struct {
	Date               *civil.Date `json:"date"`
	Amount             *float64    `json:"amount"`
	AccountNumber      *string     `json:"account_number"`
	BankCode           *string     `json:"bank_code"`
	ConstantSymbol     *string     `json:"constant_symbol"`
	VariableSymbol     *string     `json:"variable_symbol"`
	SpecificSymbol     *string     `json:"specific_symbol"`
	UserIdentification *string     `json:"user_identification"`
	Type               *string     `json:"type"`
	Executor           *string     `json:"executor"`
	AccountName        *string     `json:"account_name"`
	BankName           *string     `json:"bank_name"`
	Currency           *string     `json:"currency"`
	RecipientMessage   *string     `json:"recipient_message"`
	InstructionID      *string     `json:"instruction_id"`
	Specification      *string     `json:"specification"`
	TransactionID      *string     `json:"transaction_id"`
	Comment            *string     `json:"comment"`
	BIC                *string     `json:"bic"`
	Reference          *string     `json:"reference"`

	// AccountNumberFull is "<account_number>/<bank_code>", set only when
	// both parts are present.
	AccountNumberFull *string `json:"account_number_full"`

	// OriginalAmount and OriginalCurrency are split out of Specification
	// when it has the form "<amount> <ISO currency>", e.g. a card payment
	// in a foreign currency. Otherwise both are nil.
	OriginalAmount   *float64 `json:"original_amount"`
	OriginalCurrency *string  `json:"original_currency"`
}

// AccountInfo is the account header block of a statement response.
type AccountInfo struct {
	AccountNumber     *string  `json:"account_number"`
	BankCode          *string  `json:"bank_code"`
	Currency          *string  `json:"currency"`
	IBAN              *string  `json:"iban"`
	BIC               *string  `json:"bic"`
	Balance           *float64 `json:"balance"`
	AccountNumberFull *string  `json:"account_number_full"`
}

// accountNumberFull joins an account number and bank code with "/". It is
// nil unless both parts are non-nil.
func accountNumberFull(accountNumber, bankCode *string) *string {
	if accountNumber == nil || bankCode == nil {
		return nil
	}
	full := *accountNumber + "/" + *bankCode
	return &full
}
