// Package collection builds one payment collection (a PmtInf block): the
// shared debtor or creditor fields plus the transactions added to it.
package collection

import (
	"github.com/shopspring/decimal"

	"fjacquet/sepa-pain/internal/currencyutils"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/identifier"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/models"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
)

const (
	scopeCollection = "collection"
	scopePayment    = "payment"
)

// Options configure how a collection checks its input.
type Options struct {
	// Validate runs the field registry and the business rules on every
	// record. Required collection fields are checked regardless.
	Validate bool
	Flags    fields.Flags
	// Clock decides the BIC threshold for versions that have one.
	Clock     dateutils.Clock
	Countries identifier.CountryTable
	Logger    logging.Logger
}

// Collection is a payment collection under construction.
type Collection struct {
	profile  rules.Profile
	opts     Options
	fields   *fields.Record
	payments []*Payment
	log      logging.Logger
}

// Payment is one accepted transaction.
type Payment struct {
	fields *fields.Record
	amount decimal.Decimal
}

// Get returns a payment field.
func (p *Payment) Get(name string) string { return p.fields.Get(name) }

// Has reports whether a payment field is set.
func (p *Payment) Has(name string) bool { return p.fields.Has(name) }

// Amount returns the instructed amount.
func (p *Payment) Amount() decimal.Decimal { return p.amount }

// Address returns the postal address of the counterparty, or nil.
func (p *Payment) Address() *models.PostalAddress { return p.fields.PstlAdr.Clone() }

// Fields returns a copy of the payment record.
func (p *Payment) Fields() *fields.Record { return p.fields.Clone() }

// New checks the collection record against profile and returns an empty
// collection owning a copy of it.
func New(profile rules.Profile, rec *fields.Record, opts Options) (*Collection, error) {
	if opts.Countries == nil {
		opts.Countries = identifier.DefaultCountryTable()
	}
	if opts.Clock == nil {
		opts.Clock = dateutils.SystemClock
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewDiscardLogger()
	}

	rec = rec.Clone()
	rules.ApplyPlaceholderBIC(profile, rec)

	if missing := rec.Missing(profile.CollectionRequired()); len(missing) > 0 {
		log.Warn("Collection rejected",
			logging.F(logging.FieldCollection, rec.Get(fields.PmtInfID)),
			logging.F(logging.FieldFields, missing))
		return nil, &sepaerror.MissingRequiredFieldError{Scope: scopeCollection, Fields: missing}
	}

	if opts.Validate {
		if invalid := fields.CheckAndSanitizeAll(rec, opts.Flags, profile.CollectionOptions()); len(invalid) > 0 {
			log.Warn("Collection rejected",
				logging.F(logging.FieldCollection, rec.Get(fields.PmtInfID)),
				logging.F(logging.FieldFields, invalid))
			return nil, &sepaerror.InvalidFieldValueError{Scope: scopeCollection, Fields: invalid}
		}
		if err := crossCheck(opts.Countries, rec); err != nil {
			return nil, err
		}
	}

	log = log.WithFields(
		logging.F(logging.FieldCollection, rec.Get(fields.PmtInfID)),
		logging.F(logging.FieldVersion, profile.Version.String()))
	log.Debug("Collection accepted")

	return &Collection{profile: profile, opts: opts, fields: rec, log: log}, nil
}

func crossCheck(countries identifier.CountryTable, rec *fields.Record) error {
	if !rec.Has(fields.BIC) {
		return nil
	}
	iban, bic := rec.Get(fields.IBAN), rec.Get(fields.BIC)
	if !countries.CrossCheckIBANBIC(iban, bic) {
		return &sepaerror.IbanBicMismatchError{IBAN: iban, BIC: bic}
	}
	return nil
}

// AddPayment normalizes raw and adds it as a transaction.
func (c *Collection) AddPayment(raw map[string]any) error {
	rec, err := fields.Normalize(raw)
	if err != nil {
		return err
	}
	return c.AddPaymentRecord(rec)
}

// AddPaymentRecord checks a payment record and appends it. The collection
// is left untouched when an error is returned.
func (c *Collection) AddPaymentRecord(in *fields.Record) error {
	rec := in.Clone()
	if err := c.checkPayment(rec); err != nil {
		c.log.WithError(err).Warn("Payment rejected",
			logging.F(logging.FieldPayment, rec.Get(fields.PmtID)))
		return err
	}

	amount, err := currencyutils.ParseAmount(rec.Get(fields.InstdAmt))
	if err != nil {
		err = &sepaerror.InvalidFieldValueError{Scope: scopePayment, Fields: []string{fields.InstdAmt}}
		c.log.WithError(err).Warn("Payment rejected",
			logging.F(logging.FieldPayment, rec.Get(fields.PmtID)))
		return err
	}

	rules.Fold(c.profile, c.fields)
	c.payments = append(c.payments, &Payment{fields: rec, amount: amount})
	c.log.Debug("Payment added",
		logging.F(logging.FieldPayment, rec.Get(fields.PmtID)),
		logging.F(logging.FieldAmount, amount.StringFixed(2)))
	return nil
}

func (c *Collection) checkPayment(rec *fields.Record) error {
	p := c.profile
	rules.ApplyPlaceholderBIC(p, rec)
	if p.DropOriginalAgentBIC {
		rec.Delete(fields.OrgnlDbtrAgtBIC)
	}
	if !c.opts.Validate {
		return nil
	}

	bicRequired := rules.BICRequired(p, c.fields.Get(fields.IBAN), rec.Get(fields.IBAN), c.opts.Clock.Today())
	required := p.PaymentRequired()
	if bicRequired && !contains(required, fields.BIC) {
		required = append(required, fields.BIC)
	}
	if missing := rec.Missing(required); len(missing) > 0 {
		return &sepaerror.MissingRequiredFieldError{Scope: scopePayment, Fields: missing}
	}
	if invalid := fields.CheckAndSanitizeAll(rec, c.opts.Flags, p.PaymentOptions(bicRequired)); len(invalid) > 0 {
		return &sepaerror.InvalidFieldValueError{Scope: scopePayment, Fields: invalid}
	}
	if p.Kind == rules.DirectDebit {
		if err := rules.CheckAmendment(p, rec); err != nil {
			return err
		}
		if err := rules.CheckSMNDA(p, c.fields.Get(fields.SeqTp), rec); err != nil {
			return err
		}
	}
	return crossCheck(c.opts.Countries, rec)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ControlSum is the sum of all instructed amounts.
func (c *Collection) ControlSum() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range c.payments {
		sum = sum.Add(p.amount)
	}
	return sum
}

// ControlSumOf sums the control sums of several collections.
func ControlSumOf(colls []*Collection) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range colls {
		sum = sum.Add(c.ControlSum())
	}
	return sum
}

// TransactionCount is the number of accepted payments.
func (c *Collection) TransactionCount() int { return len(c.payments) }

// IsEmpty reports whether no payment was accepted.
func (c *Collection) IsEmpty() bool { return len(c.payments) == 0 }

// Payments returns the accepted payments in insertion order.
func (c *Collection) Payments() []*Payment {
	out := make([]*Payment, len(c.payments))
	copy(out, c.payments)
	return out
}

// Fields returns a copy of the collection record.
func (c *Collection) Fields() *fields.Record { return c.fields.Clone() }

// Get returns a collection field.
func (c *Collection) Get(name string) string { return c.fields.Get(name) }

// Has reports whether a collection field is set.
func (c *Collection) Has(name string) bool { return c.fields.Has(name) }

// Address returns the postal address of the collection owner, or nil.
func (c *Collection) Address() *models.PostalAddress { return c.fields.PstlAdr.Clone() }

// ID is the payment information id.
func (c *Collection) ID() string { return c.fields.Get(fields.PmtInfID) }

// Currency is the collection currency, EUR unless ccy is set.
func (c *Collection) Currency() string {
	if c.fields.Has(fields.Ccy) {
		return c.fields.Get(fields.Ccy)
	}
	return models.DefaultCurrency
}

// Profile returns the rules the collection was built with.
func (c *Collection) Profile() rules.Profile { return c.profile }
