package server

import (
	"fmt"

	"github.com/rgehrsitz/ssbenefit/internal/domain"
	"github.com/rgehrsitz/ssbenefit/internal/wageindex"
	"github.com/rgehrsitz/ssbenefit/pkg/dateutil"
)

// BenefitsRequest is the body of POST /v1/benefits and POST /v1/sweep.
// Dates use YYYY-MM-DD.
type BenefitsRequest struct {
	BirthDate         string                 `json:"birth_date"`
	ClaimDate         string                 `json:"claim_date"`
	Earnings          domain.EarningsHistory `json:"earnings"`
	IncludeDisability bool                   `json:"include_disability"`
	IncludeSurvivor   bool                   `json:"include_survivor"`
}

// toDomain parses the request dates. The claim date may be omitted for a sweep.
func (r BenefitsRequest) toDomain(requireClaim bool) (domain.BenefitRequest, error) {
	var out domain.BenefitRequest
	if r.BirthDate == "" {
		return out, domain.NewCalculationError("request", "birth_date is required", domain.ErrMissingInput)
	}
	birth, err := dateutil.ParseDate(r.BirthDate)
	if err != nil {
		return out, domain.NewCalculationError("request", fmt.Sprintf("birth_date: %v", err), domain.ErrInvalidDate)
	}
	out.BirthDate = birth
	out.Earnings = r.Earnings

	switch {
	case r.ClaimDate != "":
		claim, err := dateutil.ParseDate(r.ClaimDate)
		if err != nil {
			return out, domain.NewCalculationError("request", fmt.Sprintf("claim_date: %v", err), domain.ErrInvalidDate)
		}
		out.ClaimDate = claim
	case requireClaim:
		return out, domain.NewCalculationError("request", "claim_date is required", domain.ErrMissingInput)
	}
	return out, nil
}

// ResponseMetadata identifies one API calculation
type ResponseMetadata struct {
	CalculationID string `json:"calculation_id"`
	DurationMs    int64  `json:"duration_ms"`
}

// BenefitsResponse is the body returned by POST /v1/benefits
type BenefitsResponse struct {
	ResponseMetadata
	Result *domain.BenefitResult `json:"result"`
}

// SweepResponse is the body returned by POST /v1/sweep
type SweepResponse struct {
	ResponseMetadata
	Options []domain.ClaimOption `json:"options"`
}

// WageIndexResponse is the body returned by GET /v1/wage-index
type WageIndexResponse struct {
	CutoffYear int               `json:"cutoff_year"`
	Entries    []wageindex.Entry `json:"entries"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is returned by GET /healthz
type HealthResponse struct {
	Status string `json:"status"`
}
