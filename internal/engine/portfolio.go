package engine

import "math"

// consolidationHorizonMonths caps the consolidated timeline at ten years.
const consolidationHorizonMonths = 120

// ConsolidatePortfolio rolls the active-scenario results of many projects
// into a single portfolio view. Scalar indicators are summed, except IRR
// (exposure-weighted average, falling back to cost weight when a project has
// no exposure) and MOIC (simple average). The timeline is summed month by
// month up to a fixed 120-month horizon, with the portfolio exposure series
// recomputed as the negative part of the summed accumulated balance.
//
// An empty input yields zeroed metrics over a zeroed horizon.
func ConsolidatePortfolio(results []SimulationResults) PortfolioMetrics {
	timeline := make([]MonthlyFlow, consolidationHorizonMonths)
	for i := range timeline {
		timeline[i] = MonthlyFlow{Month: i, CostBreakdown: map[string]float64{}}
	}

	metrics := PortfolioMetrics{ConsolidatedTimeline: timeline}

	weightedIRRSum := 0.0
	totalWeight := 0.0
	moicSum := 0.0

	for _, res := range results {
		ind := res.Indicators
		metrics.TotalProjects++
		metrics.TotalVGV += ind.GrossVGV
		metrics.TotalNetResult += ind.NetResult
		metrics.TotalNPV += ind.NPV
		metrics.TotalExposure += ind.ExposurePeak

		weight := math.Abs(ind.ExposurePeak)
		if weight == 0 {
			weight = ind.TotalCost
		}
		totalWeight += weight
		weightedIRRSum += ind.IRR * weight
		moicSum += ind.MOIC

		for idx, month := range res.Timeline {
			if idx >= consolidationHorizonMonths {
				break
			}
			agg := &timeline[idx]
			agg.GrossRevenue += month.GrossRevenue
			agg.TaxesAndFees += month.TaxesAndFees
			agg.Revenue += month.Revenue
			agg.ConstructionCost += month.ConstructionCost
			agg.OtherCosts += month.OtherCosts
			agg.TotalCost += month.TotalCost
			agg.OperationalCashFlow += month.OperationalCashFlow
			agg.FinancialCost += month.FinancialCost
			agg.NetCashFlow += month.NetCashFlow
			agg.AccumulatedCashFlow += month.AccumulatedCashFlow
			agg.UnitsSold += month.UnitsSold
			agg.AccumulatedUnitsSold += month.AccumulatedUnitsSold
			agg.Stock += month.Stock

			if agg.AccumulatedCashFlow < 0 {
				agg.Exposure = agg.AccumulatedCashFlow
			} else {
				agg.Exposure = 0
			}
		}
	}

	if totalWeight > 0 {
		metrics.WeightedIRR = weightedIRRSum / totalWeight
	}
	if metrics.TotalProjects > 0 {
		metrics.AvgMOIC = moicSum / float64(metrics.TotalProjects)
	}

	return metrics
}
