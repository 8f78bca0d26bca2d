package engine

import "math"

// AnnualToMonthlyRate converts an annual percentage rate to the equivalent
// effective monthly rate: (1 + annual/100)^(1/12) - 1.
func AnnualToMonthlyRate(annualPct float64) float64 {
	return math.Pow(1+annualPct/100, 1.0/12) - 1
}

// NPV discounts the cash-flow series at the given periodic rate.
// NPV(0, flows) is the plain sum of the flows.
func NPV(rate float64, cashFlows []float64) float64 {
	npv := 0.0
	for t, v := range cashFlows {
		npv += v / math.Pow(1+rate, float64(t))
	}
	return npv
}

// IRR finds the periodic internal rate of return of the series by
// Newton-Raphson, starting from a 10% guess, and returns it as a percentage.
//
// Up to 1000 iterations; converged when |NPV| < 1e-7. If the derivative hits
// exactly zero or the iteration does not converge the result is 0. That
// fallback cannot be told apart from a genuine zero rate; the ambiguity is
// inherited from the model this reproduces and accepted: the engine always
// answers with a number.
func IRR(cashFlows []float64) float64 {
	const (
		maxIter   = 1000
		precision = 1e-7
	)

	rate := 0.1
	for i := 0; i < maxIter; i++ {
		npv := 0.0
		derivative := 0.0
		for t, v := range cashFlows {
			discount := math.Pow(1+rate, float64(t))
			npv += v / discount
			derivative -= float64(t) * v / (discount * (1 + rate))
		}

		if math.Abs(npv) < precision {
			return rate * 100
		}
		if derivative == 0 {
			return 0
		}
		rate -= npv / derivative
	}

	return 0
}
