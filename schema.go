package fiobank

import "cloud.google.com/go/civil"

// The schema tables map the API's raw field codes onto record fields. Codes
// are looked up lower-cased; codes missing from a table are ignored. The
// converter set is deliberately closed: string, float and date setters built
// on the sanitize helpers in coerce.go.

type txColumn struct {
	name string
	set  func(*Transaction, any) error
}

func txString(assign func(*Transaction, *string)) func(*Transaction, any) error {
	return func(t *Transaction, v any) error {
		s, err := sanitizeString(v)
		if err != nil {
			return err
		}
		assign(t, s)
		return nil
	}
}

func txFloat(assign func(*Transaction, *float64)) func(*Transaction, any) error {
	return func(t *Transaction, v any) error {
		f, err := sanitizeFloat(v)
		if err != nil {
			return err
		}
		assign(t, f)
		return nil
	}
}

func txDate(assign func(*Transaction, *civil.Date)) func(*Transaction, any) error {
	return func(t *Transaction, v any) error {
		d, err := sanitizeDate(v)
		if err != nil {
			return err
		}
		assign(t, d)
		return nil
	}
}

// Column numbers follow http://www.fio.cz/xsd/IBSchema.xsd.
var transactionSchema = map[string]txColumn{
	"column0":  {"date", txDate(func(t *Transaction, v *civil.Date) { t.Date = v })},
	"column1":  {"amount", txFloat(func(t *Transaction, v *float64) { t.Amount = v })},
	"column2":  {"account_number", txString(func(t *Transaction, v *string) { t.AccountNumber = v })},
	"column3":  {"bank_code", txString(func(t *Transaction, v *string) { t.BankCode = v })},
	"column4":  {"constant_symbol", txString(func(t *Transaction, v *string) { t.ConstantSymbol = v })},
	"column5":  {"variable_symbol", txString(func(t *Transaction, v *string) { t.VariableSymbol = v })},
	"column6":  {"specific_symbol", txString(func(t *Transaction, v *string) { t.SpecificSymbol = v })},
	"column7":  {"user_identification", txString(func(t *Transaction, v *string) { t.UserIdentification = v })},
	"column8":  {"type", txString(func(t *Transaction, v *string) { t.Type = v })},
	"column9":  {"executor", txString(func(t *Transaction, v *string) { t.Executor = v })},
	"column10": {"account_name", txString(func(t *Transaction, v *string) { t.AccountName = v })},
	"column12": {"bank_name", txString(func(t *Transaction, v *string) { t.BankName = v })},
	"column14": {"currency", txString(func(t *Transaction, v *string) { t.Currency = v })},
	"column16": {"recipient_message", txString(func(t *Transaction, v *string) { t.RecipientMessage = v })},
	"column17": {"instruction_id", txString(func(t *Transaction, v *string) { t.InstructionID = v })},
	"column18": {"specification", txString(func(t *Transaction, v *string) { t.Specification = v })},
	"column22": {"transaction_id", txString(func(t *Transaction, v *string) { t.TransactionID = v })},
	"column25": {"comment", txString(func(t *Transaction, v *string) { t.Comment = v })},
	"column26": {"bic", txString(func(t *Transaction, v *string) { t.BIC = v })},
	"column27": {"reference", txString(func(t *Transaction, v *string) { t.Reference = v })},
}

type infoField struct {
	name string
	set  func(*AccountInfo, any) error
}

func infoString(assign func(*AccountInfo, *string)) func(*AccountInfo, any) error {
	return func(info *AccountInfo, v any) error {
		s, err := sanitizeString(v)
		if err != nil {
			return err
		}
		assign(info, s)
		return nil
	}
}

func infoFloat(assign func(*AccountInfo, *float64)) func(*AccountInfo, any) error {
	return func(info *AccountInfo, v any) error {
		f, err := sanitizeFloat(v)
		if err != nil {
			return err
		}
		assign(info, f)
		return nil
	}
}

var infoSchema = map[string]infoField{
	"accountid":      {"account_number", infoString(func(i *AccountInfo, v *string) { i.AccountNumber = v })},
	"bankid":         {"bank_code", infoString(func(i *AccountInfo, v *string) { i.BankCode = v })},
	"currency":       {"currency", infoString(func(i *AccountInfo, v *string) { i.Currency = v })},
	"iban":           {"iban", infoString(func(i *AccountInfo, v *string) { i.IBAN = v })},
	"bic":            {"bic", infoString(func(i *AccountInfo, v *string) { i.BIC = v })},
	"closingbalance": {"balance", infoFloat(func(i *AccountInfo, v *float64) { i.Balance = v })},
}
