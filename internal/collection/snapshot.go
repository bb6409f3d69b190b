package collection

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/models"
	"fjacquet/sepa-pain/internal/rules"
)

// Snapshot is a flat, renderer-friendly view of a collection, used for
// control lists and command output.
type Snapshot struct {
	Kind         rules.Kind
	Version      rules.Version
	DueDate      time.Time
	Reference    string
	Owner        models.Party
	Currency     string
	Transactions []Transaction
	Count        int
	ControlSum   decimal.Decimal
}

// Transaction is one payment line of a Snapshot.
type Transaction struct {
	Party      models.Party
	Remittance string
	Amount     decimal.Decimal
	EndToEndID string
	MandateID  string
}

// Snapshot returns the collection as of now. The due date is the requested
// execution or collection date, or the day after now when none is set.
func (c *Collection) Snapshot(now time.Time) Snapshot {
	p := c.profile
	s := Snapshot{
		Kind:       p.Kind,
		Version:    p.Version,
		DueDate:    c.dueDate(now),
		Reference:  c.ID(),
		Owner:      models.NewParty(c.Get(p.OwnerName()), c.Get(fields.IBAN), c.Get(fields.BIC)),
		Currency:   c.Currency(),
		Count:      c.TransactionCount(),
		ControlSum: c.ControlSum(),
	}
	for _, pay := range c.payments {
		s.Transactions = append(s.Transactions, Transaction{
			Party:      models.NewParty(pay.Get(p.CounterpartyName()), pay.Get(fields.IBAN), pay.Get(fields.BIC)),
			Remittance: pay.Get(fields.RmtInf),
			Amount:     pay.amount,
			EndToEndID: pay.Get(fields.PmtID),
			MandateID:  pay.Get(fields.MndtID),
		})
	}
	return s
}

func (c *Collection) dueDate(now time.Time) time.Time {
	if v := c.Get(c.profile.RequestedDateField()); v != "" {
		if t, _, err := dateutils.ParseDate(v); err == nil {
			return t
		}
	}
	if v := c.Get(fields.ReqdExctnDtTm); v != "" && c.profile.Kind == rules.CreditTransfer {
		if t, err := time.Parse(dateutils.DateTimeLayoutISO, v); err == nil {
			return dateutils.StartOfDay(t)
		}
	}
	return dateutils.StartOfDay(now).AddDate(0, 0, 1)
}

// Total returns the control sum as money in the collection currency.
func (s Snapshot) Total() models.Money {
	return models.NewMoney(s.ControlSum, s.Currency)
}
