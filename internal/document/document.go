// Package document assembles payment collections into pain.001 credit
// transfer or pain.008 direct debit files.
package document

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/sepa-pain/internal/collection"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/fields"
	"fjacquet/sepa-pain/internal/identifier"
	"fjacquet/sepa-pain/internal/logging"
	"fjacquet/sepa-pain/internal/rules"
	"fjacquet/sepa-pain/internal/sepaerror"
)

const scopeDocument = "document"

// Document is one payment initiation message under construction. A
// Document is not safe for concurrent use; build independent documents in
// separate goroutines instead.
type Document struct {
	profile    rules.Profile
	initgPty   string
	msgID      string
	initgPtyID string
	orgID      string
	orgBOB     string

	validate  bool
	flags     fields.Flags
	clock     dateutils.Clock
	countries identifier.CountryTable
	logger    logging.Logger

	collections []*collection.Collection
}

// Option configures a Document.
type Option func(*Document)

// WithOrganizationID sets InitgPty/Id/OrgId/Othr/Id.
func WithOrganizationID(id string) Option {
	return func(d *Document) { d.orgID = id }
}

// WithOrganizationBIC sets InitgPty/Id/OrgId/BICOrBEI.
func WithOrganizationBIC(bob string) Option {
	return func(d *Document) { d.orgBOB = bob }
}

// WithInitiatingPartyID sets InitgPty/Id/PrvtId/Othr/Id.
func WithInitiatingPartyID(id string) Option {
	return func(d *Document) { d.initgPtyID = id }
}

// WithValidation turns field validation and sanitizing on or off. It is on
// by default.
func WithValidation(enabled bool) Option {
	return func(d *Document) { d.validate = enabled }
}

// WithSanitizeFlags sets the sanitizer flags used when validating.
func WithSanitizeFlags(flags fields.Flags) Option {
	return func(d *Document) { d.flags = flags }
}

// WithClock replaces the wall clock used for timestamps, default dates and
// date-dependent rules.
func WithClock(clock dateutils.Clock) Option {
	return func(d *Document) { d.clock = clock }
}

// WithCountryTable replaces the IBAN/BIC country cross-check table.
func WithCountryTable(t identifier.CountryTable) Option {
	return func(d *Document) { d.countries = t }
}

// WithLogger injects a logger. Without one nothing is logged.
func WithLogger(logger logging.Logger) Option {
	return func(d *Document) { d.logger = logger }
}

// NewMessageID returns a random 32 character message id.
func NewMessageID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// New creates an empty document for version. An empty msgID is replaced by
// NewMessageID.
func New(version rules.Version, initgPty, msgID string, opts ...Option) (*Document, error) {
	profile, err := rules.Resolve(version)
	if err != nil {
		return nil, err
	}

	d := &Document{
		profile:  profile,
		initgPty: initgPty,
		msgID:    msgID,
		validate: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.clock == nil {
		d.clock = dateutils.SystemClock
	}
	if d.countries == nil {
		d.countries = identifier.DefaultCountryTable()
	}
	if d.logger == nil {
		d.logger = logging.NewDiscardLogger()
	}
	if d.msgID == "" {
		d.msgID = NewMessageID()
	}

	if strings.TrimSpace(d.orgID) != "" && strings.TrimSpace(d.orgBOB) != "" {
		return nil, sepaerror.ErrAmbiguousOrganizationID
	}
	if d.validate {
		if err := d.checkHeader(); err != nil {
			return nil, err
		}
	}

	d.logger = d.logger.WithFields(
		logging.F(logging.FieldMessageID, d.msgID),
		logging.F(logging.FieldVersion, version.String()))
	return d, nil
}

func (d *Document) checkHeader() error {
	if strings.TrimSpace(d.initgPty) == "" {
		return &sepaerror.MissingRequiredFieldError{Scope: scopeDocument, Fields: []string{fields.InitgPty}}
	}

	rec := fields.NewRecord(nil)
	for name, v := range map[string]string{
		fields.InitgPty:   d.initgPty,
		fields.MsgID:      d.msgID,
		fields.InitgPtyID: d.initgPtyID,
		fields.OrgIDID:    d.orgID,
		fields.OrgIDBOB:   d.orgBOB,
	} {
		if strings.TrimSpace(v) != "" {
			rec.Set(name, v)
		}
	}
	if invalid := fields.CheckAndSanitizeAll(rec, d.flags, fields.Options{}); len(invalid) > 0 {
		return &sepaerror.InvalidFieldValueError{Scope: scopeDocument, Fields: invalid}
	}

	d.initgPty = rec.Get(fields.InitgPty)
	d.msgID = rec.Get(fields.MsgID)
	d.initgPtyID = rec.Get(fields.InitgPtyID)
	d.orgID = rec.Get(fields.OrgIDID)
	d.orgBOB = rec.Get(fields.OrgIDBOB)
	return nil
}

// AddCollection normalizes raw and adds it as a new payment collection.
// Payments are added through the returned collection.
func (d *Document) AddCollection(raw map[string]any) (*collection.Collection, error) {
	rec, err := fields.Normalize(raw)
	if err != nil {
		return nil, err
	}
	return d.AddCollectionRecord(rec)
}

// AddCollectionRecord adds a payment collection from a normalized record.
func (d *Document) AddCollectionRecord(rec *fields.Record) (*collection.Collection, error) {
	c, err := collection.New(d.profile, rec, collection.Options{
		Validate:  d.validate,
		Flags:     d.flags,
		Clock:     d.clock,
		Countries: d.countries,
		Logger:    d.logger,
	})
	if err != nil {
		return nil, err
	}
	d.collections = append(d.collections, c)
	return c, nil
}

// Profile returns the rules of the document version.
func (d *Document) Profile() rules.Profile { return d.profile }

// Version returns the document schema version.
func (d *Document) Version() rules.Version { return d.profile.Version }

// MessageID returns the (possibly sanitized) message id.
func (d *Document) MessageID() string { return d.msgID }

// InitiatingParty returns the (possibly sanitized) initiating party name.
func (d *Document) InitiatingParty() string { return d.initgPty }

// Collections returns the collections in insertion order, empty ones
// included.
func (d *Document) Collections() []*collection.Collection {
	out := make([]*collection.Collection, len(d.collections))
	copy(out, d.collections)
	return out
}

// TransactionCount is the number of payments over all collections.
func (d *Document) TransactionCount() int {
	n := 0
	for _, c := range d.collections {
		n += c.TransactionCount()
	}
	return n
}

// ControlSum is the sum of all payments over all collections.
func (d *Document) ControlSum() decimal.Decimal {
	return collection.ControlSumOf(d.collections)
}
