package common

import "time"

// Provider is the primary entity of a brief, straight from the providers
// table (NPPES-sourced columns).
type Provider struct {
	NPI         string  `json:"npi"`
	DisplayName string  `json:"display_name"`
	EntityType  string  `json:"entity_type"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	Taxonomy    *string `json:"taxonomy_1"`
	IsExcluded  bool    `json:"is_excluded"`
}

// RiskScore holds the five-component composite score computed by the ETL.
// Component weights: billing outlier 0.30, ownership risk 0.25, payment
// trajectory 0.20, exclusion proximity 0.15, program concentration 0.10.
type RiskScore struct {
	NPI                       string     `json:"npi"`
	CompositeScore            float64    `json:"composite_score"`
	RiskLabel                 string     `json:"risk_label"`
	BillingOutlierScore       *float64   `json:"billing_outlier_score"`
	OwnershipRiskScore        *float64   `json:"ownership_risk_score"`
	PaymentTrajectoryScore    *float64   `json:"payment_trajectory_score"`
	ExclusionProximityScore   *float64   `json:"exclusion_proximity_score"`
	ProgramConcentrationScore *float64   `json:"program_concentration_score"`
	ScoredAt                  *time.Time `json:"scored_at"`
}

// PaymentsSummary aggregates the combined payments table across programs
// (Medicaid, Medicare, MedicarePartD) and years.
type PaymentsSummary struct {
	TotalAllPrograms   float64 `json:"total_all_programs"`
	TotalMedicare      float64 `json:"total_medicare"`
	TotalMedicaid      float64 `json:"total_medicaid"`
	TotalPartD         float64 `json:"total_part_d"`
	TotalClaims        int64   `json:"total_claims"`
	TotalBeneficiaries int64   `json:"total_beneficiaries"`
	FirstYear          int     `json:"first_year"`
	LastYear           int     `json:"last_year"`
}

// PaymentYear is one per-year/program row for the payments detail endpoint.
type PaymentYear struct {
	Year          int     `json:"year"`
	Program       string  `json:"program"`
	Payments      float64 `json:"payments"`
	Claims        int64   `json:"claims"`
	Beneficiaries int64   `json:"beneficiaries"`
}

// ExclusionRecord is one LEIE exclusion row for a provider.
type ExclusionRecord struct {
	ExclusionID   string  `json:"exclusion_id"`
	ExclusionType string  `json:"exclusion_type"`
	ExclusionDate *string `json:"exclusion_date"`
	ReinstateDate *string `json:"reinstate_date"`
	Specialty     string  `json:"specialty"`
	State         string  `json:"state"`
}

// FinancialsSummary carries the latest HCRIS cost-report metrics. When no
// cost report links to the NPI, HasHcrisData is false and the metric
// pointers stay nil; the brief never omits the section.
type FinancialsSummary struct {
	HasHcrisData        bool     `json:"has_hcris_data"`
	LatestYear          *int     `json:"latest_year"`
	OperatingMarginPct  *float64 `json:"operating_margin_pct"`
	NetPatientRevenue   *float64 `json:"net_patient_revenue"`
	TotalOperatingCosts *float64 `json:"total_operating_costs"`
}

// PoliticalSummary aggregates FEC contributions linked to the provider's
// ownership circle.
type PoliticalSummary struct {
	ContributionCount int64    `json:"contribution_count"`
	TotalAmount       float64  `json:"total_amount"`
	TopCommittees     []string `json:"top_committees"`
}

// OwnershipSummary is the ownership section of a brief: the flattened chain
// plus the renderable graph, with a truncation hint when the path cap hit.
type OwnershipSummary struct {
	Chain     []ChainEntry    `json:"chain"`
	Graph     GraphProjection `json:"graph"`
	Truncated bool            `json:"truncated"`
}

// ProviderBrief is the per-request aggregate for one provider. Sections
// other than Provider degrade to explicit default shapes rather than
// failing the whole response; Degraded names the sections that did.
type ProviderBrief struct {
	Provider   Provider          `json:"provider"`
	RiskScore  *RiskScore        `json:"risk_score"`
	Payments   PaymentsSummary   `json:"payments_summary"`
	Exclusions []ExclusionRecord `json:"exclusions"`
	Financials FinancialsSummary `json:"financials"`
	Political  PoliticalSummary  `json:"political"`
	Ownership  OwnershipSummary  `json:"ownership"`
	Degraded   []string          `json:"degraded,omitempty"`
}
