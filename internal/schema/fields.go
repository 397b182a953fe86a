package schema

// Kind is the declared value domain of a form field
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindBoolean
)

// String returns a string representation of the Kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Field identifies one entry of the report form. Only the constants below
// are valid; a Form can be indexed by nothing else.
type Field int

const (
	Congregation Field = iota
	District
	BusLeaderName
	BusLeaderEmail
	BusLeaderPhone
	Publishers
	BusTotal
	BusOtherCongregations
	BusOtherCongregationNames
	BusParkedAtVenue
	DisabledWheelchair
	DisabledNoWheelchair
	HearingImpaired
	SpecialNeeds
	Companions
	DisabledTotal
	Cars
	CarsDisabled
	CarsTotal
	TrainTotal
	FirstAidTotal
	BusRequested

	fieldCount
)

type fieldSpec struct {
	name string
	kind Kind
}

// specs holds the PDF field name and kind of every Field, in Field order
var specs = [fieldCount]fieldSpec{
	Congregation:              {"01.Congregazione", KindText},
	District:                  {"02.Circoscrizione", KindText},
	BusLeaderName:             {"03.Pullman_nome_capogruppo", KindText},
	BusLeaderEmail:            {"04.Pullman_email_capogruppo", KindText},
	BusLeaderPhone:            {"05.Pullman_telefono_capogruppo", KindText},
	Publishers:                {"06.Num_Procl", KindInteger},
	BusTotal:                  {"07.Pullman_tot", KindInteger},
	BusOtherCongregations:     {"08.PullmanAltreCongr", KindBoolean},
	BusOtherCongregationNames: {"09.Pullman_altre_congr", KindText},
	BusParkedAtVenue:          {"10.PullmanInSosta", KindBoolean},
	DisabledWheelchair:        {"11.Disabili_ruote", KindInteger},
	DisabledNoWheelchair:      {"12.Disabili_no_ruote", KindInteger},
	HearingImpaired:           {"13.Problemi_udito", KindInteger},
	SpecialNeeds:              {"14.Particolari_necessità", KindInteger},
	Companions:                {"15.Accompagnatori", KindInteger},
	DisabledTotal:             {"16.Tot_disabili", KindInteger},
	Cars:                      {"17.Autovetture", KindInteger},
	CarsDisabled:              {"18.Autovetture_disabili", KindInteger},
	CarsTotal:                 {"19.Tot_autovetture", KindInteger},
	TrainTotal:                {"20.In_Treno", KindInteger},
	FirstAidTotal:             {"21.OperSanitari", KindInteger},
	BusRequested:              {"Pullman", KindBoolean},
}

// Name returns the exact PDF form field name
func (f Field) Name() string {
	if !f.valid() {
		return ""
	}
	return specs[f].name
}

// Kind returns the declared value domain
func (f Field) Kind() Kind {
	if !f.valid() {
		return KindText
	}
	return specs[f].kind
}

// String implements fmt.Stringer
func (f Field) String() string {
	return f.Name()
}

func (f Field) valid() bool {
	return f >= 0 && f < fieldCount
}

// AllFields returns every schema field in declaration order
func AllFields() []Field {
	fields := make([]Field, fieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}
