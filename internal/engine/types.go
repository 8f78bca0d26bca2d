// Package engine implements the deterministic feasibility model for a
// real-estate development project: distribution curves, the revenue
// recognition waterfall, cost scheduling, the month-stepping cash-flow
// accumulator, financial indicators (NPV, TIR, MOIC, exposure, payback),
// the scenario quality gate, and portfolio consolidation.
//
// Everything in this package is a pure function over value types. There is
// no I/O, no persistence, and no error return on the simulation paths:
// numeric degeneracy resolves to defined fallback values so callers always
// get a number back.
package engine

import "time"

// DistributionType selects how a cost total is spread across its duration.
type DistributionType string

const (
	DistributionLinear     DistributionType = "LINEAR"
	DistributionSCurve     DistributionType = "S_CURVE"
	DistributionHeadLoaded DistributionType = "HEAD_LOADED"
	DistributionTailLoaded DistributionType = "TAIL_LOADED"
	DistributionManual     DistributionType = "MANUAL"
)

// AcquisitionType is how the land is acquired.
type AcquisitionType string

const (
	AcquisitionCash   AcquisitionType = "CASH"
	AcquisitionBarter AcquisitionType = "BARTER"
)

// QualityGateStatus is the overall verdict of scenario validation.
type QualityGateStatus string

const (
	GateOK      QualityGateStatus = "OK"
	GateAlerta  QualityGateStatus = "ALERTA"
	GateBlocker QualityGateStatus = "BLOCKER"
)

// ProjectData holds the physical premises of the development.
type ProjectData struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Type     string `json:"type"`

	TotalUnits      int     `json:"total_units"`
	TotalArea       float64 `json:"total_area"`
	EfficiencyRatio float64 `json:"efficiency_ratio"`

	AcquisitionType AcquisitionType `json:"acquisition_type"`
	LandCashValue   float64         `json:"land_cash_value"`

	TotalPrivateArea         float64 `json:"total_private_area"`
	TotalEquivalentArea      float64 `json:"total_equivalent_area"`
	SellablePrivateArea      float64 `json:"sellable_private_area"`
	PhysicalBarterPercentage float64 `json:"physical_barter_percentage"`

	ConstructionDurationMonths int `json:"construction_duration_months"`
	SalesDurationMonths        int `json:"sales_duration_months"`
}

// EconomicIndices are the annual percentage rates the model depends on.
type EconomicIndices struct {
	INCC         float64 `json:"incc"`          // construction inflation, % a.a.
	IPCA         float64 `json:"ipca"`          // general inflation, % a.a.
	CDI          float64 `json:"cdi"`           // funding benchmark, % a.a.
	DiscountRate float64 `json:"discount_rate"` // TMA, % a.a.
}

// SalesPremises describes pricing, deductions and the payment waterfall.
type SalesPremises struct {
	PricePerSqm  float64 `json:"price_per_sqm"`
	BrokerageFee float64 `json:"brokerage_fee"` // %
	Taxes        float64 `json:"taxes"`         // %
	Barter       float64 `json:"barter"`        // financial barter, %

	InvestorDiscount   float64 `json:"investor_discount"`   // %
	InvestorPercentage float64 `json:"investor_percentage"` // %

	DownPayment         float64 `json:"down_payment"`         // %
	MonthlyInstallments float64 `json:"monthly_installments"` // %
	Keys                float64 `json:"keys"`                 // %

	KeysMonth int `json:"keys_month"`

	// MonthlySales is an explicit per-month unit sales schedule. When it does
	// not cover the whole sales duration the engine falls back to a linear
	// pace over the sellable stock.
	MonthlySales []float64 `json:"monthly_sales"`
}

// CostCategory is a single dated cost item. TotalValue and VGVPercentage are
// mutually exclusive: a positive VGVPercentage resolves the total against the
// projected gross VGV at simulation time.
type CostCategory struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	TotalValue         float64          `json:"total_value"`
	VGVPercentage      float64          `json:"vgv_percentage,omitempty"`
	DistributionType   DistributionType `json:"distribution_type"`
	StartMonth         int              `json:"start_month"`
	DurationMonths     int              `json:"duration_months"`
	ManualDistribution []float64        `json:"manual_distribution,omitempty"`
}

// ScenarioInput is the full set of premises the engine simulates.
type ScenarioInput struct {
	ProjectData   ProjectData     `json:"project_data"`
	Indices       EconomicIndices `json:"indices"`
	SalesPremises SalesPremises   `json:"sales_premises"`
	Costs         []CostCategory  `json:"costs"`
}

// MonthlyFlow is one month of the simulated timeline. Produced only by
// RunSimulation and never mutated afterwards.
type MonthlyFlow struct {
	Month         int     `json:"month"`
	GrossRevenue  float64 `json:"gross_revenue"`
	TaxesAndFees  float64 `json:"taxes_and_fees"`
	Revenue       float64 `json:"revenue"`

	ConstructionCost float64            `json:"construction_cost"`
	OtherCosts       float64            `json:"other_costs"`
	CostBreakdown    map[string]float64 `json:"cost_breakdown"`
	TotalCost        float64            `json:"total_cost"`

	OperationalCashFlow float64 `json:"operational_cash_flow"`
	FinancialCost       float64 `json:"financial_cost"`
	NetCashFlow         float64 `json:"net_cash_flow"`
	AccumulatedCashFlow float64 `json:"accumulated_cash_flow"`
	Exposure            float64 `json:"exposure"`

	UnitsSold            float64 `json:"units_sold"`
	AccumulatedUnitsSold float64 `json:"accumulated_units_sold"`
	Stock                float64 `json:"stock"`
}

// PaybackNotReached is the sentinel payback month for a scenario whose
// accumulated balance never recovers to zero.
const PaybackNotReached = -1

// Indicators are the summary financial metrics of a simulation.
type Indicators struct {
	GrossVGV     float64 `json:"gross_vgv"`
	NetVGV       float64 `json:"net_vgv"`
	TotalCost    float64 `json:"total_cost"`
	NetResult    float64 `json:"net_result"`
	Margin       float64 `json:"margin"`        // %
	ExposurePeak float64 `json:"exposure_peak"` // most negative accumulated balance
	NPV          float64 `json:"npv"`
	IRR          float64 `json:"irr"`      // nominal TIR, % a.a.
	RealIRR      float64 `json:"real_irr"` // inflation-adjusted TIR, % a.a.
	MOIC         float64 `json:"moic"`
	PaybackMonth int     `json:"payback_month"`
}

// SimulationResults is the cached output of one full pipeline run.
type SimulationResults struct {
	Timeline   []MonthlyFlow `json:"timeline"`
	Indicators Indicators    `json:"indicators"`
}

// IssueSeverity tags a validation issue.
type IssueSeverity string

const (
	SeverityBlocker IssueSeverity = "BLOCKER"
	SeverityAlerta  IssueSeverity = "ALERTA"
)

// ValidationIssue is a single quality-gate finding.
type ValidationIssue struct {
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
	Field    string        `json:"field,omitempty"`
}

// ValidationResult is the quality-gate verdict for a scenario's inputs.
type ValidationResult struct {
	Status      QualityGateStatus `json:"status"`
	Issues      []ValidationIssue `json:"issues"`
	EvaluatedAt time.Time         `json:"evaluated_at"`
}

// PortfolioMetrics is the consolidated view over the active scenarios of a
// set of projects. It is a computed value, never stored.
type PortfolioMetrics struct {
	TotalProjects        int           `json:"total_projects"`
	TotalVGV             float64       `json:"total_vgv"`
	TotalNetResult       float64       `json:"total_net_result"`
	TotalNPV             float64       `json:"total_npv"`
	TotalExposure        float64       `json:"total_exposure"`
	WeightedIRR          float64       `json:"weighted_irr"`
	AvgMOIC              float64       `json:"avg_moic"`
	ConsolidatedTimeline []MonthlyFlow `json:"consolidated_timeline"`
}
