package engine

import (
	"math"
	"strings"
)

// keysOffsetMonths is the fixed gap between construction end and key
// delivery. Installments run until the keys month and the keys share of the
// price is collected there; this is a business rule, not a user input.
const keysOffsetMonths = 3

// postKeysBufferMonths extends the timeline past the keys month so late
// receivables and financing tails are visible.
const postKeysBufferMonths = 12

// DeriveAreas recomputes the dependent area fields from land area and
// efficiency: total private area is land area times the efficiency ratio,
// and the sellable share shrinks by the physical barter percentage.
func DeriveAreas(pd ProjectData) ProjectData {
	pd.TotalPrivateArea = pd.TotalArea * pd.EfficiencyRatio
	barter := 0.0
	if pd.AcquisitionType == AcquisitionBarter {
		barter = pd.PhysicalBarterPercentage
	}
	pd.SellablePrivateArea = pd.TotalPrivateArea * (1 - barter/100)
	return pd
}

// SellableUnits returns the unit stock available for sale. Under a barter
// acquisition the land owner keeps the physical-barter share of the units.
func SellableUnits(pd ProjectData) int {
	if pd.AcquisitionType == AcquisitionBarter {
		return int(math.Floor(float64(pd.TotalUnits) * (1 - pd.PhysicalBarterPercentage/100)))
	}
	return pd.TotalUnits
}

// unitPricing carries the per-unit ticket values derived once per simulation.
type unitPricing struct {
	grossTicket float64
	netTicket   float64
}

// derivePricing computes the gross ticket and the effective net ticket per
// unit. The net ticket folds in brokerage, taxes and financial barter, then
// blends the retail and investor channels (investor share sold at a
// discount).
func derivePricing(pd ProjectData, sp SalesPremises, sellableUnits int) unitPricing {
	sellableArea := pd.SellablePrivateArea
	if sellableArea <= 0 {
		sellableArea = pd.TotalArea
	}
	avgUnitSize := 0.0
	if sellableUnits > 0 {
		avgUnitSize = sellableArea / float64(sellableUnits)
	}

	grossTicket := avgUnitSize * sp.PricePerSqm

	deductions := (sp.BrokerageFee + sp.Taxes + sp.Barter) / 100
	baseNetTicket := grossTicket * (1 - deductions)

	invShare := sp.InvestorPercentage / 100
	invDiscount := sp.InvestorDiscount / 100
	netTicket := baseNetTicket*(1-invShare) + baseNetTicket*(1-invDiscount)*invShare

	return unitPricing{grossTicket: grossTicket, netTicket: netTicket}
}

// resolveCosts returns the cost list with VGV-linked items resolved to
// absolute values against the projected gross VGV. Resolution happens once
// per simulation, not per month.
func resolveCosts(costs []CostCategory, grossVGV float64) []CostCategory {
	resolved := make([]CostCategory, len(costs))
	copy(resolved, costs)
	for i := range resolved {
		if resolved[i].VGVPercentage > 0 {
			resolved[i].TotalValue = grossVGV * resolved[i].VGVPercentage / 100
		}
	}
	return resolved
}

// constructionCostTokens classify a cost as construction spend by name.
var constructionCostTokens = []string{"obra", "civil", "construction"}

func isConstructionCost(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range constructionCostTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// salesPace resolves how many units are sold in a given month. The explicit
// schedule is used only when it covers the whole sales duration; otherwise
// the pace is linear over the sellable stock, capped so cumulative sales
// never exceed it.
type salesPace struct {
	manual        []float64
	useManual     bool
	linearPace    float64
	salesDuration int
	sellableUnits float64
}

func newSalesPace(pd ProjectData, sp SalesPremises, sellableUnits int) salesPace {
	duration := pd.SalesDurationMonths
	if duration <= 0 {
		duration = 1
	}
	return salesPace{
		manual:        sp.MonthlySales,
		useManual:     len(sp.MonthlySales) >= pd.SalesDurationMonths,
		linearPace:    float64(sellableUnits) / float64(duration),
		salesDuration: pd.SalesDurationMonths,
		sellableUnits: float64(sellableUnits),
	}
}

// unitsSoldIn returns the units sold in a single sale month, for the revenue
// waterfall. The linear fallback caps against the stock already consumed by
// earlier linear months.
func (p salesPace) unitsSoldIn(month int) float64 {
	if p.useManual {
		if month < len(p.manual) {
			return p.manual[month]
		}
		return 0
	}
	if month >= p.salesDuration {
		return 0
	}
	return math.Min(p.linearPace, p.sellableUnits-p.linearPace*float64(month))
}

// RunSimulation executes the full deterministic pipeline for a scenario's
// premises and returns the monthly timeline plus the indicator set.
//
// Malformed numeric inputs degrade per the guards in each step instead of
// failing: the function never returns an error.
func RunSimulation(input ScenarioInput) SimulationResults {
	pd := input.ProjectData
	sp := input.SalesPremises
	indices := input.Indices

	sellableUnits := SellableUnits(pd)
	pricing := derivePricing(pd, sp, sellableUnits)

	grossVGV := float64(sellableUnits) * pricing.grossTicket
	netVGV := float64(sellableUnits) * pricing.netTicket

	costs := resolveCosts(input.Costs, grossVGV)

	keysMonth := pd.ConstructionDurationMonths + keysOffsetMonths

	totalDuration := keysMonth + postKeysBufferMonths
	if pd.SalesDurationMonths > totalDuration {
		totalDuration = pd.SalesDurationMonths
	}
	for _, c := range costs {
		if end := c.StartMonth + c.DurationMonths; end > totalDuration {
			totalDuration = end
		}
	}

	monthlyDiscountRate := AnnualToMonthlyRate(indices.DiscountRate)
	// Financing model: interest on a negative running balance, funded at a
	// 2 p.p. spread over CDI.
	monthlyBorrowingRate := AnnualToMonthlyRate(indices.CDI + 2)

	pace := newSalesPace(pd, sp, sellableUnits)

	timeline := make([]MonthlyFlow, 0, totalDuration+1)
	accumulated := 0.0
	accumulatedUnits := 0.0

	for m := 0; m <= totalDuration; m++ {
		// Revenue: re-scan every sale cohort because payment timing depends
		// on each cohort's own start month.
		grossRevenue := 0.0
		netRevenue := 0.0
		for saleMonth := 0; saleMonth <= m && saleMonth <= pd.SalesDurationMonths; saleMonth++ {
			units := pace.unitsSoldIn(saleMonth)
			if units <= 0 {
				continue
			}

			pct := 0.0
			if m == saleMonth {
				pct += sp.DownPayment / 100
			}

			installmentStart := saleMonth + 1
			installments := keysMonth - installmentStart + 1
			if installments < 1 {
				installments = 1
			}
			if m >= installmentStart && m <= keysMonth {
				pct += sp.MonthlyInstallments / 100 / float64(installments)
			}

			if m == keysMonth {
				pct += sp.Keys / 100
			}

			if pct > 0 {
				grossRevenue += units * pricing.grossTicket * pct
				netRevenue += units * pricing.netTicket * pct
			}
		}
		taxesAndFees := grossRevenue - netRevenue

		// Costs for the month, split into construction vs other buckets.
		constructionCost := 0.0
		otherCosts := 0.0
		breakdown := map[string]float64{}
		for _, c := range costs {
			if m < c.StartMonth || m >= c.StartMonth+c.DurationMonths {
				continue
			}
			curve := DistributionCurve(c.DistributionType, c.DurationMonths, c.ManualDistribution)
			value := c.TotalValue * curve[m-c.StartMonth]
			breakdown[c.Name] = value
			if isConstructionCost(c.Name) {
				constructionCost += value
			} else {
				otherCosts += value
			}
		}
		totalCost := constructionCost + otherCosts

		operational := netRevenue - totalCost

		// Financing cost accrues on the previous month's negative balance.
		financialCost := 0.0
		if accumulated < 0 {
			financialCost = math.Abs(accumulated) * monthlyBorrowingRate
		}

		netCashFlow := operational - financialCost
		accumulated += netCashFlow

		// Stock depletion follows the same pace rule but caps against the
		// cumulative units already sold.
		unitsSold := 0.0
		if pace.useManual {
			if m < len(pace.manual) {
				unitsSold = pace.manual[m]
			}
		} else if m < pd.SalesDurationMonths {
			unitsSold = math.Min(pace.linearPace, pace.sellableUnits-accumulatedUnits)
		}
		accumulatedUnits += unitsSold

		exposure := 0.0
		if accumulated < 0 {
			exposure = accumulated
		}

		timeline = append(timeline, MonthlyFlow{
			Month:                m,
			GrossRevenue:         grossRevenue,
			TaxesAndFees:         taxesAndFees,
			Revenue:              netRevenue,
			ConstructionCost:     constructionCost,
			OtherCosts:           otherCosts,
			CostBreakdown:        breakdown,
			TotalCost:            totalCost,
			OperationalCashFlow:  operational,
			FinancialCost:        financialCost,
			NetCashFlow:          netCashFlow,
			AccumulatedCashFlow:  accumulated,
			Exposure:             exposure,
			UnitsSold:            unitsSold,
			AccumulatedUnitsSold: accumulatedUnits,
			Stock:                math.Max(0, pace.sellableUnits-accumulatedUnits),
		})
	}

	return SimulationResults{
		Timeline:   timeline,
		Indicators: computeIndicators(timeline, indices, grossVGV, netVGV, monthlyDiscountRate),
	}
}
