package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// CSVSummarizer implements the summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Person", "ClaimDate", "EffectiveClaimDate", "AIME", "PIA", "COLAAdjustedPIA", "MonthlyBenefit", "Disability", "FamilyMaximum"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sr := range report.Results {
		r := sr.Result
		if r == nil {
			continue
		}
		disability, familyMax := "", ""
		if r.DisabilityBenefit != nil {
			disability = r.DisabilityBenefit.StringFixed(2)
		}
		if r.Survivor != nil {
			familyMax = r.Survivor.FamilyMaximum.StringFixed(2)
		}
		row := []string{
			sr.Name,
			sr.Person,
			dateutil.FormatDate(r.Dates.RequestedClaim),
			dateutil.FormatDate(r.Dates.EffectiveClaim),
			r.AIME.StringFixed(2),
			r.PIA.StringFixed(2),
			r.COLAAdjustedPIA.StringFixed(2),
			r.NormalMonthlyBenefit.StringFixed(2),
			disability,
			familyMax,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes every claim option of every swept scenario.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Person", "ClaimDate", "AgeMonths", "Age", "MonthsFromFRA", "MonthlyBenefit"}); err != nil {
		return nil, err
	}
	for _, sr := range report.Results {
		for _, o := range sr.Sweep {
			row := []string{
				sr.Name,
				sr.Person,
				dateutil.FormatDate(o.ClaimDate),
				strconv.Itoa(o.AgeMonths),
				o.AgeLabel(),
				strconv.Itoa(o.MonthsFromFRA),
				o.NormalMonthlyBenefit.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
