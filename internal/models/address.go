package models

// PostalAddress holds either the line form (Ctry plus up to two AdrLine
// entries) or the structured form of an ISO 20022 postal address. Which
// parts are accepted depends on the schema version.
type PostalAddress struct {
	Dept        string   `json:"dept,omitempty" yaml:"dept,omitempty" mapstructure:"dept"`
	SubDept     string   `json:"subDept,omitempty" yaml:"subDept,omitempty" mapstructure:"subdept"`
	StrtNm      string   `json:"strtNm,omitempty" yaml:"strtNm,omitempty" mapstructure:"strtnm"`
	BldgNb      string   `json:"bldgNb,omitempty" yaml:"bldgNb,omitempty" mapstructure:"bldgnb"`
	BldgNm      string   `json:"bldgNm,omitempty" yaml:"bldgNm,omitempty" mapstructure:"bldgnm"`
	Flr         string   `json:"flr,omitempty" yaml:"flr,omitempty" mapstructure:"flr"`
	PstBx       string   `json:"pstBx,omitempty" yaml:"pstBx,omitempty" mapstructure:"pstbx"`
	Room        string   `json:"room,omitempty" yaml:"room,omitempty" mapstructure:"room"`
	PstCd       string   `json:"pstCd,omitempty" yaml:"pstCd,omitempty" mapstructure:"pstcd"`
	TwnNm       string   `json:"twnNm,omitempty" yaml:"twnNm,omitempty" mapstructure:"twnnm"`
	TwnLctnNm   string   `json:"twnLctnNm,omitempty" yaml:"twnLctnNm,omitempty" mapstructure:"twnlctnnm"`
	DstrctNm    string   `json:"dstrctNm,omitempty" yaml:"dstrctNm,omitempty" mapstructure:"dstrctnm"`
	CtrySubDvsn string   `json:"ctrySubDvsn,omitempty" yaml:"ctrySubDvsn,omitempty" mapstructure:"ctrysubdvsn"`
	Ctry        string   `json:"ctry,omitempty" yaml:"ctry,omitempty" mapstructure:"ctry"`
	AdrLine     []string `json:"adrLine,omitempty" yaml:"adrLine,omitempty" mapstructure:"adrline"`
}

// IsEmpty reports whether no part of the address is set.
func (a PostalAddress) IsEmpty() bool {
	if len(a.AdrLine) > 0 {
		return false
	}
	for _, p := range a.StructuredParts() {
		if *p.Value != "" {
			return false
		}
	}
	return a.Ctry == ""
}

// HasStructuredParts reports whether any part beyond Ctry and AdrLine is set.
func (a PostalAddress) HasStructuredParts() bool {
	for _, p := range a.StructuredParts() {
		if *p.Value != "" {
			return true
		}
	}
	return false
}

// AddressPart names one structured element of a postal address together
// with its maximum length.
type AddressPart struct {
	Name   string
	MaxLen int
	Value  *string
}

// StructuredParts returns the structured elements in schema order. The
// Value pointers refer into a, so callers may rewrite them in place.
func (a *PostalAddress) StructuredParts() []AddressPart {
	return []AddressPart{
		{"Dept", 70, &a.Dept},
		{"SubDept", 70, &a.SubDept},
		{"StrtNm", 70, &a.StrtNm},
		{"BldgNb", 16, &a.BldgNb},
		{"BldgNm", 35, &a.BldgNm},
		{"Flr", 70, &a.Flr},
		{"PstBx", 16, &a.PstBx},
		{"Room", 70, &a.Room},
		{"PstCd", 16, &a.PstCd},
		{"TwnNm", 35, &a.TwnNm},
		{"TwnLctnNm", 35, &a.TwnLctnNm},
		{"DstrctNm", 35, &a.DstrctNm},
		{"CtrySubDvsn", 35, &a.CtrySubDvsn},
	}
}

// Clone returns a deep copy of the address.
func (a *PostalAddress) Clone() *PostalAddress {
	if a == nil {
		return nil
	}
	c := *a
	c.AdrLine = append([]string(nil), a.AdrLine...)
	return &c
}
