package services

import "incorpora/internal/engine"

// defaultIndices are the market assumptions seeded into every new scenario.
// Users adjust them per scenario; there is no global assumptions store.
func defaultIndices() engine.EconomicIndices {
	return engine.EconomicIndices{
		INCC:         4.5,
		IPCA:         4.0,
		CDI:          10.5,
		DiscountRate: 12.0,
	}
}

// defaultSalesPremises is the typical residential launch: 10% deductions and
// a 20/60/20 payment split.
func defaultSalesPremises() engine.SalesPremises {
	return engine.SalesPremises{
		BrokerageFee:        4,
		Taxes:               6,
		DownPayment:         20,
		MonthlyInstallments: 60,
		Keys:                20,
	}
}
