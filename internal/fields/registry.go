package fields

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"fjacquet/sepa-pain/internal/currencyutils"
	"fjacquet/sepa-pain/internal/dateutils"
	"fjacquet/sepa-pain/internal/identifier"
)

// AddressForm selects which postal address elements a schema version accepts.
type AddressForm int

const (
	// AddressNone means the version has no postal address element.
	AddressNone AddressForm = iota
	// AddressLines allows Ctry and up to two AdrLine entries.
	AddressLines
	// AddressStructured allows the structured elements and Ctry.
	AddressStructured
)

// Options carry the version-dependent parts of field validation.
type Options struct {
	// AllowEmptyBIC accepts an empty bic field.
	AllowEmptyBIC bool
	Address       AddressForm
}

// Maximum lengths of text fields.
const (
	ShortTextLen    = 70
	LongTextLen     = 140
	IdentifierLen   = 35
	SignatureLen    = 1025
	MaxAddressLines = 2
)

var (
	sepaCharset = regexp.MustCompile(`^[a-zA-Z0-9/\-?:().,'+\s]*$`)
	restricted1 = regexp.MustCompile(`^([A-Za-z0-9]|[+?/\-:().,' ]){1,35}$`)
	restricted2 = regexp.MustCompile(`^([A-Za-z0-9]|[+?/\-:().,']){1,35}$`)
	currency    = regexp.MustCompile(`^[A-Z]{3}$`)
	fourLetters = regexp.MustCompile(`^[A-Z]{4}$`)
	country     = regexp.MustCompile(`^[A-Z]{2}$`)
)

// validator returns the accepted, possibly normalized value.
type validator func(value string, opts Options) (string, bool)

type entry struct {
	validate validator
	// maxLen > 0 marks a free-text field that may be sanitized
	maxLen int
}

var registry = map[string]entry{
	InitgPty:           {validate: text(ShortTextLen), maxLen: ShortTextLen},
	Dbtr:               {validate: text(ShortTextLen), maxLen: ShortTextLen},
	Cdtr:               {validate: text(ShortTextLen), maxLen: ShortTextLen},
	UltmtDbtr:          {validate: text(ShortTextLen), maxLen: ShortTextLen},
	UltmtCdtr:          {validate: text(ShortTextLen), maxLen: ShortTextLen},
	OrgnlCdtrSchmeIDNm: {validate: text(ShortTextLen), maxLen: ShortTextLen},
	RmtInf:             {validate: text(LongTextLen), maxLen: LongTextLen},

	MsgID:       {validate: matches(restricted1)},
	PmtInfID:    {validate: matches(restricted1)},
	PmtID:       {validate: matches(restricted1)},
	MndtID:      {validate: matches(restricted1)},
	OrgnlMndtID: {validate: matches(restricted1)},

	InitgPtyID:  {validate: matches(restricted2)},
	OrgIDID:     {validate: matches(restricted2)},
	UltmtDbtrID: {validate: matches(restricted2)},

	IBAN:               {validate: iban},
	OrgnlDbtrAcctIBAN:  {validate: iban},
	BIC:                {validate: bic},
	OrgnlDbtrAgtBIC:    {validate: strictBIC},
	OrgIDBOB:           {validate: strictBIC},
	CI:                 {validate: creditorID},
	OrgnlCdtrSchmeIDID: {validate: creditorID},

	Ccy:          {validate: upper(currency)},
	BtchBookg:    {validate: boolean},
	AmdmntInd:    {validate: boolean},
	InstdAmt:     {validate: amount},
	LclInstrm:    {validate: oneOf(LclCore, LclCOR1, LclB2B)},
	SeqTp:        {validate: oneOf(SeqTpFirst, SeqTpRcur, SeqTpOOFF, SeqTpFinal)},
	Purp:         {validate: upper(fourLetters)},
	CtgyPurp:     {validate: upper(fourLetters)},
	OrgnlDbtrAgt: {validate: oneOf(SMNDA)},

	DtOfSgntr:     {validate: date},
	ReqdExctnDt:   {validate: date},
	ReqdColltnDt:  {validate: date},
	ReqdExctnDtTm: {validate: dateTime},

	ElctrncSgntr: {validate: text(SignatureLen)},
}

// Known reports whether name has a registered validator.
func Known(name string) bool {
	if name == PstlAdr {
		return true
	}
	_, ok := registry[name]
	return ok
}

// Sanitizable reports whether name is a free-text field the sanitizer may
// rewrite.
func Sanitizable(name string) bool {
	e, ok := registry[name]
	return ok && e.maxLen > 0
}

// Check validates a single value. Unknown names are accepted unchanged.
func Check(name, value string, opts Options) (string, bool) {
	e, ok := registry[name]
	if !ok {
		return value, true
	}
	return e.validate(value, opts)
}

// CheckAndSanitize validates value and, for free-text fields, retries once
// with the sanitized value.
func CheckAndSanitize(name, value string, flags Flags, opts Options) (string, bool) {
	if v, ok := Check(name, value, opts); ok {
		return v, true
	}
	e, ok := registry[name]
	if !ok || e.maxLen == 0 {
		return value, false
	}
	return e.validate(SanitizeText(value, e.maxLen, flags), opts)
}

// CheckAll validates every present field of rec in place without
// sanitizing. It returns the sorted names of the fields that failed.
func CheckAll(rec *Record, opts Options) []string {
	return checkRecord(rec, opts, func(name, value string) (string, bool) {
		return Check(name, value, opts)
	}, false, 0)
}

// CheckAndSanitizeAll validates every present field of rec, sanitizing free
// text that does not validate, and stores the accepted values back into
// rec. Fields that fail are left untouched. It returns the sorted names of
// all failing fields; an empty result means rec is valid. Running it again
// on its own output changes nothing.
func CheckAndSanitizeAll(rec *Record, flags Flags, opts Options) []string {
	return checkRecord(rec, opts, func(name, value string) (string, bool) {
		return CheckAndSanitize(name, value, flags, opts)
	}, true, flags)
}

func checkRecord(rec *Record, opts Options, check func(name, value string) (string, bool), sanitize bool, flags Flags) []string {
	if rec == nil {
		return nil
	}
	var failed []string
	for name, value := range rec.Values {
		v, ok := check(name, value)
		if !ok {
			failed = append(failed, name)
			continue
		}
		rec.Values[name] = v
	}
	if rec.PstlAdr != nil {
		addr, ok := checkAddress(rec.PstlAdr, opts.Address, sanitize, flags)
		if ok {
			rec.PstlAdr = addr
		} else {
			failed = append(failed, PstlAdr)
		}
	}
	sort.Strings(failed)
	return failed
}

func text(maxLen int) validator {
	return func(v string, _ Options) (string, bool) {
		return v, utf8.RuneCountInString(v) <= maxLen && sepaCharset.MatchString(v)
	}
}

func matches(re *regexp.Regexp) validator {
	return func(v string, _ Options) (string, bool) {
		return v, re.MatchString(v)
	}
}

func upper(re *regexp.Regexp) validator {
	return func(v string, _ Options) (string, bool) {
		v = strings.ToUpper(strings.TrimSpace(v))
		return v, re.MatchString(v)
	}
}

func oneOf(values ...string) validator {
	return func(v string, _ Options) (string, bool) {
		v = strings.ToUpper(strings.TrimSpace(v))
		for _, allowed := range values {
			if v == allowed {
				return v, true
			}
		}
		return v, false
	}
}

func boolean(v string, _ Options) (string, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	return v, v == "true" || v == "false"
}

func iban(v string, _ Options) (string, bool) {
	n, err := identifier.ValidateIBAN(v)
	return n, err == nil
}

func bic(v string, opts Options) (string, bool) {
	if opts.AllowEmptyBIC && strings.TrimSpace(v) == "" {
		return "", true
	}
	return strictBIC(v, opts)
}

func strictBIC(v string, _ Options) (string, bool) {
	n, err := identifier.ValidateBIC(v)
	return n, err == nil
}

func creditorID(v string, _ Options) (string, bool) {
	n, err := identifier.ValidateCreditorIdentifier(v)
	return n, err == nil
}

func amount(v string, _ Options) (string, bool) {
	n, err := currencyutils.NormalizeAmount(v)
	return n, err == nil
}

func date(v string, _ Options) (string, bool) {
	n, err := dateutils.NormalizeDate(v)
	return n, err == nil
}

func dateTime(v string, _ Options) (string, bool) {
	n, err := dateutils.NormalizeDateTime(v)
	return n, err == nil
}
