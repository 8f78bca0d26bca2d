package engine

import "math"

// computeIndicators derives the summary metrics from a finished timeline.
// Net VGV comes in precomputed (sellable units x effective net ticket) so
// the margin base matches the theoretical total, not the sum of the flows.
func computeIndicators(timeline []MonthlyFlow, indices EconomicIndices, grossVGV, netVGV, monthlyDiscountRate float64) Indicators {
	totalCost := 0.0
	totalInflows := 0.0
	totalOutflows := 0.0
	exposurePeak := math.Inf(1)
	paybackMonth := PaybackNotReached

	flows := make([]float64, len(timeline))
	for i, t := range timeline {
		flows[i] = t.NetCashFlow
		totalCost += t.TotalCost
		if t.NetCashFlow > 0 {
			totalInflows += t.NetCashFlow
		} else {
			totalOutflows += math.Abs(t.NetCashFlow)
		}
		if t.AccumulatedCashFlow < exposurePeak {
			exposurePeak = t.AccumulatedCashFlow
		}
		if paybackMonth == PaybackNotReached && t.Month > 0 && t.AccumulatedCashFlow >= 0 {
			paybackMonth = t.Month
		}
	}
	if len(timeline) == 0 {
		exposurePeak = 0
	}

	netResult := 0.0
	if len(timeline) > 0 {
		netResult = timeline[len(timeline)-1].AccumulatedCashFlow
	}

	margin := 0.0
	if netVGV > 0 {
		margin = netResult / netVGV * 100
	}

	npv := NPV(monthlyDiscountRate, flows)

	monthlyIRR := IRR(flows)
	annualIRR := math.Pow(1+monthlyIRR/100, 12) - 1

	annualInflation := indices.IPCA / 100
	realIRR := (1+annualIRR)/(1+annualInflation) - 1

	moic := 0.0
	if totalOutflows > 0 {
		moic = totalInflows / totalOutflows
	}

	return Indicators{
		GrossVGV:     grossVGV,
		NetVGV:       netVGV,
		TotalCost:    totalCost,
		NetResult:    netResult,
		Margin:       margin,
		ExposurePeak: exposurePeak,
		NPV:          npv,
		IRR:          annualIRR * 100,
		RealIRR:      realIRR * 100,
		MOIC:         moic,
		PaybackMonth: paybackMonth,
	}
}
