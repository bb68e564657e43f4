package calculation

import (
	"testing"
	"time"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ym(year int, month time.Month) dateutil.YearMonth {
	return dateutil.YearMonth{Year: year, Month: month}
}

func TestGenerateSchedule_HomeLoan(t *testing.T) {
	s := GenerateSchedule(d("1000000"), d("10"), d("15000"), ym(2025, time.January), dateutil.YearMonth{})

	require.Equal(t, 98, s.Months())
	assert.True(t, s.PaidOff)
	assert.False(t, s.NonAmortizing)
	assert.Equal(t, ym(2033, time.February), s.PayoffPeriod)
	assertDecimal(t, "465760.56", s.TotalInterest)
	assertDecimal(t, "1000000.00", s.TotalPrincipal)
	assert.True(t, s.RemainingBalance.IsZero())

	first := s.Entries[0]
	assertDecimal(t, "8333.33", first.Interest)
	assertDecimal(t, "6666.67", first.Principal)
	assertDecimal(t, "993333.33", first.Balance)

	prev := d("1000000")
	for _, e := range s.Entries {
		assert.True(t, e.Balance.LessThan(prev), "balance must decrease at %s", e.Period)
		assert.True(t, e.Payment.Equal(e.Interest.Add(e.Principal)))
		prev = e.Balance
	}

	last := s.Entries[len(s.Entries)-1]
	assert.True(t, last.Payment.LessThan(d("15000")))
}

func TestGenerateSchedule_ZeroRate(t *testing.T) {
	s := GenerateSchedule(d("1200"), decimal.Zero, d("100"), ym(2025, time.March), dateutil.YearMonth{})
	assert.Equal(t, 12, s.Months())
	assert.True(t, s.TotalInterest.IsZero())
	assert.Equal(t, ym(2026, time.February), s.PayoffPeriod)
}

func TestGenerateSchedule_StopsAtEndMonth(t *testing.T) {
	s := GenerateSchedule(d("1200"), decimal.Zero, d("100"), ym(2025, time.January), ym(2025, time.June))
	assert.Equal(t, 6, s.Months())
	assert.False(t, s.PaidOff)
	assertDecimal(t, "600.00", s.RemainingBalance)
}

func TestGenerateSchedule_NonAmortizing(t *testing.T) {
	t.Run("bounded by end month", func(t *testing.T) {
		s := GenerateSchedule(d("100000"), d("12"), d("500"), ym(2025, time.January), ym(2025, time.December))
		assert.True(t, s.NonAmortizing)
		assert.False(t, s.PaidOff)
		assert.Equal(t, 12, s.Months())
		assert.True(t, s.RemainingBalance.GreaterThan(d("100000")))
		assert.True(t, s.Entries[0].Principal.IsNegative())
	})

	t.Run("capped without end month", func(t *testing.T) {
		s := GenerateSchedule(d("100000"), d("12"), d("500"), ym(2025, time.January), dateutil.YearMonth{})
		assert.True(t, s.NonAmortizing)
		assert.Equal(t, DefaultMaxTermMonths, s.Months())
	})
}

func TestGenerateSchedule_NothingOwed(t *testing.T) {
	s := GenerateSchedule(decimal.Zero, d("10"), d("100"), ym(2025, time.January), dateutil.YearMonth{})
	assert.Equal(t, 0, s.Months())
	assert.True(t, s.PaidOff)
	assert.Equal(t, ym(2025, time.January), s.PayoffPeriod)
}

func TestAmortizeLoan_Window(t *testing.T) {
	t.Run("starts at the later of start year and loan start", func(t *testing.T) {
		loan := domain.Loan{
			ID:          "car",
			Principal:   d("1200"),
			Installment: d("100"),
			StartDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		}
		s := AmortizeLoan(loan, 2025)
		assert.Equal(t, "car", s.LoanID)
		require.NotEmpty(t, s.Entries)
		assert.Equal(t, ym(2026, time.March), s.Entries[0].Period)
	})

	t.Run("derives the installment from the term", func(t *testing.T) {
		loan := domain.Loan{
			ID:        "term",
			Principal: d("1200"),
			StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		}
		s := AmortizeLoan(loan, 2025)
		assert.Equal(t, 12, s.Months())
		assert.True(t, s.PaidOff)
		assertDecimal(t, "100.00", s.Entries[0].Payment)
	})

	t.Run("quarterly installment is converted", func(t *testing.T) {
		loan := domain.Loan{ID: "q", Principal: d("1200"), Installment: d("300"), Frequency: domain.FrequencyQuarterly}
		s := AmortizeLoan(loan, 2025)
		assert.Equal(t, 12, s.Months())
	})
}

func TestStandardInstallment(t *testing.T) {
	assertDecimal(t, "8884.88", StandardInstallment(d("100000"), d("12"), 12))
	assertDecimal(t, "100.00", StandardInstallment(d("1200"), decimal.Zero, 12))
	assertDecimal(t, "1200.00", StandardInstallment(d("1200"), d("12"), 0))

	emi := StandardInstallment(d("100000"), d("12"), 12)
	s := GenerateSchedule(d("100000"), d("12"), emi, ym(2025, time.January), dateutil.YearMonth{})
	assert.LessOrEqual(t, s.Months(), 13)
	assert.True(t, s.PaidOff)
}

func TestAggregateAnnual(t *testing.T) {
	s := GenerateSchedule(d("1200"), decimal.Zero, d("100"), ym(2025, time.July), dateutil.YearMonth{})
	annual := AggregateAnnual(s)

	require.Len(t, annual, 2)
	assert.Equal(t, 2025, annual[0].Year)
	assertDecimal(t, "600.00", annual[0].Principal)
	assertDecimal(t, "600.00", annual[0].EndBalance)
	assert.Equal(t, 2026, annual[1].Year)
	assertDecimal(t, "0.00", annual[1].EndBalance)

	assert.Empty(t, AggregateAnnual(domain.AmortizationSchedule{}))
}

func TestCompareScenarios(t *testing.T) {
	loan := domain.Loan{
		ID:                "home-loan",
		Principal:         d("1000000"),
		AnnualRatePercent: d("10"),
		Installment:       d("15000"),
	}

	cmp := CompareScenarios(loan, d("5000"), 2025)

	assert.Equal(t, "home-loan", cmp.LoanID)
	assertDecimal(t, "15000.00", cmp.Base.MonthlyPayment)
	assertDecimal(t, "20000.00", cmp.Accelerated.MonthlyPayment)
	assert.Equal(t, 98, cmp.Base.Months)
	assert.Equal(t, 65, cmp.Accelerated.Months)
	assert.Equal(t, 33, cmp.MonthsSaved)
	assertDecimal(t, "166782.40", cmp.InterestSaved)
	assert.True(t, cmp.Accelerated.PaidOff)

	none := CompareScenarios(loan, decimal.NewFromInt(-10), 2025)
	assert.Equal(t, 0, none.MonthsSaved)
	assert.True(t, none.InterestSaved.IsZero())
}
