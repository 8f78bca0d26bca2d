package engine

import (
	"fmt"
	"math"
	"time"
)

// paymentTermTolerance absorbs floating-point drift when checking that the
// payment-term percentages add up to 100.
const paymentTermTolerance = 0.1

// ValidateScenario runs the quality gate over a scenario's raw inputs. Each
// rule contributes an independent issue; the overall status is BLOCKER when
// any blocker is present, ALERTA when only alerts are present, OK otherwise.
//
// Validation looks only at inputs, never at a simulated timeline, and always
// returns a result: invalid premises are findings, not errors.
func ValidateScenario(input ScenarioInput) ValidationResult {
	var issues []ValidationIssue

	pd := input.ProjectData
	sp := input.SalesPremises

	if pd.Name == "" {
		issues = append(issues, ValidationIssue{Severity: SeverityBlocker, Message: "Nome do projeto é obrigatório.", Field: "project_data.name"})
	}
	if pd.TotalUnits <= 0 {
		issues = append(issues, ValidationIssue{Severity: SeverityBlocker, Message: "Total de unidades deve ser maior que zero.", Field: "project_data.total_units"})
	}
	if pd.TotalArea <= 0 {
		issues = append(issues, ValidationIssue{Severity: SeverityBlocker, Message: "Área total deve ser maior que zero.", Field: "project_data.total_area"})
	}
	if pd.ConstructionDurationMonths <= 0 {
		issues = append(issues, ValidationIssue{Severity: SeverityBlocker, Message: "Duração da obra inválida.", Field: "project_data.construction_duration_months"})
	}

	if sp.PricePerSqm <= 0 {
		issues = append(issues, ValidationIssue{Severity: SeverityBlocker, Message: "Preço por m² deve ser maior que zero.", Field: "sales_premises.price_per_sqm"})
	}

	paymentSum := sp.DownPayment + sp.MonthlyInstallments + sp.Keys
	if math.Abs(paymentSum-100) > paymentTermTolerance {
		issues = append(issues, ValidationIssue{
			Severity: SeverityBlocker,
			Message:  fmt.Sprintf("Fluxo de recebimento soma %g%%, deve ser 100%%.", paymentSum),
			Field:    "sales_premises",
		})
	}

	if len(sp.MonthlySales) > 0 {
		totalSales := 0.0
		for _, v := range sp.MonthlySales {
			totalSales += v
		}
		sellable := SellableUnits(pd)
		if math.Abs(totalSales-float64(sellable)) > paymentTermTolerance {
			issues = append(issues, ValidationIssue{
				Severity: SeverityAlerta,
				Message:  fmt.Sprintf("Distribuição de vendas soma %.1f unidades, mas estoque vendável é %d.", totalSales, sellable),
				Field:    "sales_premises.monthly_sales",
			})
		}
	}

	if len(input.Costs) == 0 {
		issues = append(issues, ValidationIssue{Severity: SeverityAlerta, Message: "Nenhum custo cadastrado.", Field: "costs"})
	} else {
		totalCost := 0.0
		for _, c := range input.Costs {
			totalCost += c.TotalValue
		}
		if totalCost <= 0 {
			issues = append(issues, ValidationIssue{Severity: SeverityBlocker, Message: "Custo total do projeto é zero.", Field: "costs"})
		}
	}

	if input.Indices.DiscountRate <= 0 {
		issues = append(issues, ValidationIssue{Severity: SeverityBlocker, Message: "Taxa de desconto (TMA) inválida.", Field: "indices.discount_rate"})
	}

	status := GateOK
	for _, issue := range issues {
		if issue.Severity == SeverityBlocker {
			status = GateBlocker
			break
		}
		status = GateAlerta
	}

	return ValidationResult{
		Status:      status,
		Issues:      issues,
		EvaluatedAt: time.Now(),
	}
}
