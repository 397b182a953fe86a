package schema

import (
	"github.com/a3tai/pdf-form-report/internal/pdf/extraction"
)

// Form holds one typed value per schema field
type Form struct {
	values [fieldCount]Value
}

// Get returns the value of f; unknown fields read as absent
func (fm *Form) Get(f Field) Value {
	if !f.valid() {
		return Absent()
	}
	return fm.values[f]
}

// Load converts decoded form fields into typed values following the schema.
// Fields missing from the input, or present without a value, are absent.
func Load(fields extraction.Fields) (*Form, error) {
	form := &Form{}
	for _, f := range AllFields() {
		desc, ok := fields.Lookup(f.Name())
		if !ok || !desc.HasValue {
			continue
		}
		v, err := convert(f.Kind(), desc.Value)
		if err != nil {
			return nil, &MalformedInputError{Field: f, Raw: desc.Value, Err: ErrInvalidInteger}
		}
		form.values[f] = v
	}
	return form, nil
}

// Info is the applicant section of a report
type Info struct {
	Congregation string
	District     string
	Publishers   int
}

// BusLeader is the contact person of a chartered bus
type BusLeader struct {
	Name  string
	Email string
	Phone string
}

// OtherCongregations lists congregations sharing the bus
type OtherCongregations struct {
	Specified bool
	Names     string
}

// Bus is the transport-by-bus section
type Bus struct {
	Requested          bool
	Total              int
	OtherCongregations OtherCongregations
	ParkedAtVenue      bool
	Leader             BusLeader
}

// Disability holds the accessibility counts
type Disability struct {
	Wheelchair      int
	NoWheelchair    int
	HearingImpaired int
	SpecialNeeds    int
	Companions      int
	Total           int
}

// CarTransport is the transport-by-car section
type CarTransport struct {
	Regular  int
	Disabled int
	Total    int
}

// Record is the parsed content of one report form
type Record struct {
	Info       Info
	Bus        Bus
	Disability Disability
	Cars       CarTransport
	Train      int
	FirstAid   int
}

// Extract converts decoded form fields into a Record. It fails with a
// *MalformedInputError when the congregation name or the publisher count is
// blank; every other field falls back to its zero value.
func Extract(fields extraction.Fields) (*Record, error) {
	form, err := Load(fields)
	if err != nil {
		return nil, err
	}
	return FromForm(form)
}

// FromForm validates a loaded form and builds its Record
func FromForm(form *Form) (*Record, error) {
	for _, f := range []Field{Congregation, Publishers} {
		if form.Get(f).Text() == "" {
			return nil, &MalformedInputError{Field: f, Raw: form.Get(f).Raw(), Err: ErrMissingRequired}
		}
	}

	return &Record{
		Info: Info{
			Congregation: form.Get(Congregation).Text(),
			District:     form.Get(District).Text(),
			Publishers:   form.Get(Publishers).Int(),
		},
		Bus: Bus{
			Requested: form.Get(BusRequested).Bool(),
			Total:     form.Get(BusTotal).Int(),
			OtherCongregations: OtherCongregations{
				Specified: form.Get(BusOtherCongregations).Bool(),
				Names:     form.Get(BusOtherCongregationNames).Text(),
			},
			ParkedAtVenue: form.Get(BusParkedAtVenue).Bool(),
			Leader: BusLeader{
				Name:  form.Get(BusLeaderName).Text(),
				Email: form.Get(BusLeaderEmail).Text(),
				Phone: form.Get(BusLeaderPhone).Text(),
			},
		},
		Disability: Disability{
			Wheelchair:      form.Get(DisabledWheelchair).Int(),
			NoWheelchair:    form.Get(DisabledNoWheelchair).Int(),
			HearingImpaired: form.Get(HearingImpaired).Int(),
			SpecialNeeds:    form.Get(SpecialNeeds).Int(),
			Companions:      form.Get(Companions).Int(),
			Total:           form.Get(DisabledTotal).Int(),
		},
		Cars: CarTransport{
			Regular:  form.Get(Cars).Int(),
			Disabled: form.Get(CarsDisabled).Int(),
			Total:    form.Get(CarsTotal).Int(),
		},
		Train:    form.Get(TrainTotal).Int(),
		FirstAid: form.Get(FirstAidTotal).Int(),
	}, nil
}
