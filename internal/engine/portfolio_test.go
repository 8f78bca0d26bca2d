package engine

import (
	"math"
	"testing"
)

func TestConsolidatePortfolio(t *testing.T) {
	t.Run("empty_portfolio_is_zeroed", func(t *testing.T) {
		metrics := ConsolidatePortfolio(nil)
		if metrics.TotalProjects != 0 || metrics.TotalVGV != 0 || metrics.WeightedIRR != 0 || metrics.AvgMOIC != 0 {
			t.Errorf("expected zeroed metrics, got %+v", metrics)
		}
		if len(metrics.ConsolidatedTimeline) != 120 {
			t.Fatalf("expected a 120-month horizon, got %d", len(metrics.ConsolidatedTimeline))
		}
		for _, m := range metrics.ConsolidatedTimeline {
			if m.NetCashFlow != 0 || m.Exposure != 0 {
				t.Fatalf("expected zeroed timeline, got %+v", m)
			}
		}
	})

	t.Run("vgv_sums_exactly", func(t *testing.T) {
		input1 := feasibilityCase()
		input2 := feasibilityCase()
		input2.ProjectData.TotalUnits = 40
		input2.ProjectData.SellablePrivateArea = 6000
		input2.SalesPremises.PricePerSqm = 12000

		res1 := RunSimulation(input1)
		res2 := RunSimulation(input2)
		metrics := ConsolidatePortfolio([]SimulationResults{res1, res2})

		if metrics.TotalProjects != 2 {
			t.Errorf("expected 2 projects, got %d", metrics.TotalProjects)
		}
		if want := res1.Indicators.GrossVGV + res2.Indicators.GrossVGV; metrics.TotalVGV != want {
			t.Errorf("expected total VGV exactly %.2f, got %.2f", want, metrics.TotalVGV)
		}
		if want := res1.Indicators.NPV + res2.Indicators.NPV; math.Abs(metrics.TotalNPV-want) > 1e-9 {
			t.Errorf("expected total NPV %.2f, got %.2f", want, metrics.TotalNPV)
		}
	})

	t.Run("timeline_sums_month_by_month", func(t *testing.T) {
		res := RunSimulation(feasibilityCase())
		metrics := ConsolidatePortfolio([]SimulationResults{res, res})
		for i := 0; i < len(res.Timeline) && i < 120; i++ {
			want := res.Timeline[i].NetCashFlow * 2
			if got := metrics.ConsolidatedTimeline[i].NetCashFlow; math.Abs(got-want) > 1e-6 {
				t.Fatalf("month %d: expected summed flow %.2f, got %.2f", i, want, got)
			}
		}
	})

	t.Run("exposure_is_negative_part_of_summed_balance", func(t *testing.T) {
		res := RunSimulation(feasibilityCase())
		metrics := ConsolidatePortfolio([]SimulationResults{res})
		for _, m := range metrics.ConsolidatedTimeline {
			if m.AccumulatedCashFlow < 0 && m.Exposure != m.AccumulatedCashFlow {
				t.Fatalf("month %d: expected exposure %.2f, got %.2f", m.Month, m.AccumulatedCashFlow, m.Exposure)
			}
			if m.AccumulatedCashFlow >= 0 && m.Exposure != 0 {
				t.Fatalf("month %d: expected zero exposure, got %.2f", m.Month, m.Exposure)
			}
		}
	})

	t.Run("irr_is_exposure_weighted", func(t *testing.T) {
		a := SimulationResults{Indicators: Indicators{IRR: 10, ExposurePeak: -100}}
		b := SimulationResults{Indicators: Indicators{IRR: 20, ExposurePeak: -300}}
		metrics := ConsolidatePortfolio([]SimulationResults{a, b})
		if want := (10.0*100 + 20.0*300) / 400; math.Abs(metrics.WeightedIRR-want) > 1e-9 {
			t.Errorf("expected weighted IRR %.4f, got %.4f", want, metrics.WeightedIRR)
		}
	})

	t.Run("irr_weight_falls_back_to_cost", func(t *testing.T) {
		a := SimulationResults{Indicators: Indicators{IRR: 10, ExposurePeak: 0, TotalCost: 500}}
		metrics := ConsolidatePortfolio([]SimulationResults{a})
		if math.Abs(metrics.WeightedIRR-10) > 1e-9 {
			t.Errorf("expected cost-weighted IRR 10, got %.4f", metrics.WeightedIRR)
		}
	})

	t.Run("moic_is_simple_average", func(t *testing.T) {
		a := SimulationResults{Indicators: Indicators{MOIC: 1.0, ExposurePeak: -1}}
		b := SimulationResults{Indicators: Indicators{MOIC: 3.0, ExposurePeak: -1}}
		metrics := ConsolidatePortfolio([]SimulationResults{a, b})
		if math.Abs(metrics.AvgMOIC-2.0) > 1e-9 {
			t.Errorf("expected average MOIC 2.0, got %.4f", metrics.AvgMOIC)
		}
	})
}
