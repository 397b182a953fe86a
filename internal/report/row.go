package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/a3tai/pdf-form-report/internal/schema"
)

// Headers are the column titles of the output sheet, in column order
var Headers = []string{
	"Congregazione",
	"Circoscrizione",
	"Totale Proclamatori",
	"Totale Pullman",
	"Disabili - Sedia a ruote",
	"Disabili - Senza sedia a ruote",
	"Disabili - Problemi di udito",
	"Disabili - Particolari necessità",
	"Disabili - Accompagnatori",
	"Totale Disabili",
	"Autovetture",
	"Autovetture - Disabili",
	"Totale Autovetture",
	"Totale Treno",
	"Totale Idonei Primo Soccorso",
}

// Row is one flattened report, ready for a spreadsheet
type Row struct {
	Congregation      string
	District          string
	Publishers        int
	BusTotal          int
	Wheelchair        int
	NoWheelchair      int
	HearingImpaired   int
	SpecialNeeds      int
	Companions        int
	DisabledTotal     int
	Cars              int
	CarsDisabled      int
	CarsTotal         int
	TrainTotal        int
	FirstAidQualified int
}

// NewRow selects the exported columns out of rec. Congregation and district
// are title-cased.
func NewRow(rec *schema.Record) Row {
	return Row{
		Congregation:      TitleCase(rec.Info.Congregation),
		District:          TitleCase(rec.Info.District),
		Publishers:        rec.Info.Publishers,
		BusTotal:          rec.Bus.Total,
		Wheelchair:        rec.Disability.Wheelchair,
		NoWheelchair:      rec.Disability.NoWheelchair,
		HearingImpaired:   rec.Disability.HearingImpaired,
		SpecialNeeds:      rec.Disability.SpecialNeeds,
		Companions:        rec.Disability.Companions,
		DisabledTotal:     rec.Disability.Total,
		Cars:              rec.Cars.Regular,
		CarsDisabled:      rec.Cars.Disabled,
		CarsTotal:         rec.Cars.Total,
		TrainTotal:        rec.Train,
		FirstAidQualified: rec.FirstAid,
	}
}

// Values returns the cells in Headers order
func (r Row) Values() []any {
	return []any{
		r.Congregation,
		r.District,
		r.Publishers,
		r.BusTotal,
		r.Wheelchair,
		r.NoWheelchair,
		r.HearingImpaired,
		r.SpecialNeeds,
		r.Companions,
		r.DisabledTotal,
		r.Cars,
		r.CarsDisabled,
		r.CarsTotal,
		r.TrainTotal,
		r.FirstAidQualified,
	}
}

// TitleCase upper-cases the first letter of every word and lower-cases the
// rest. A word starts at any cased letter not preceded by another cased
// letter, so "l'aquila" becomes "L'Aquila".
func TitleCase(s string) string {
	titled := cases.Title(language.Und).String(s)

	var b strings.Builder
	b.Grow(len(titled))
	prevCased := false
	for _, r := range titled {
		cased := isCased(r)
		if cased && !prevCased {
			r = unicode.ToTitle(r)
		}
		b.WriteRune(r)
		prevCased = cased
	}
	return b.String()
}

func isCased(r rune) bool {
	return unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
}
