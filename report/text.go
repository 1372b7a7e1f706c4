package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Cincinnati-Associates/tomi-app-sub000/domain"
)

func newPrinter() *message.Printer {
	return message.NewPrinter(language.AmericanEnglish)
}

// Money formats a currency amount with thousands separators, e.g. $1,234.56.
func Money(p *message.Printer, v float64) string {
	if v < 0 {
		return p.Sprintf("-$%.2f", -v)
	}
	return p.Sprintf("$%.2f", v)
}

func buyerNames(state domain.CalculatorState) map[string]string {
	names := make(map[string]string, len(state.Buyers))
	for i, b := range state.Buyers {
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("Buyer %d", i+1)
		}
		names[b.ID] = name
	}
	return names
}

// WriteText writes a plain-text summary of the report.
func WriteText(w io.Writer, r domain.Report) error {
	p := newPrinter()
	names := buyerNames(r.State)
	m := r.State.Mortgage

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Co-ownership summary (%s)\n\n", r.State.Mode)
	fmt.Fprintf(tw, "Home value\t%s\n", Money(p, m.HomeValue))
	fmt.Fprintf(tw, "Down payment\t%s\n", Money(p, m.DownPayment))
	fmt.Fprintf(tw, "Loan amount\t%s\n", Money(p, m.LoanAmount))
	fmt.Fprintf(tw, "Rate / term\t%.3f%% / %d years\n", m.AnnualInterestRatePercent, m.TermYears)
	fmt.Fprintf(tw, "Monthly payment\t%s\n", Money(p, r.MonthlyPayment))
	fmt.Fprintf(tw, "Total interest\t%s\n", Money(p, r.TotalInterest))

	fmt.Fprintf(tw, "\nOwnership\tnow\tfull term\n")
	for _, b := range r.State.Buyers {
		fmt.Fprintf(tw, "%s\t%.2f%%\t%.2f%%\n", names[b.ID],
			r.CurrentOwnership.Share(b.ID).Percentage,
			r.FullTermOwnership.Share(b.ID).Percentage)
	}

	for _, proj := range r.Projections {
		sc := proj.Scenario
		fmt.Fprintf(tw, "\nExit at %d months (%.2f%%/yr)\n", sc.MonthsFromClose, sc.AnnualAppreciationPercent)
		fmt.Fprintf(tw, "Projected value\t%s\n", Money(p, sc.ProjectedHomeValue))
		fmt.Fprintf(tw, "Remaining balance\t%s\n", Money(p, proj.RemainingBalance))
		fmt.Fprintf(tw, "Total equity\t%s\n", Money(p, proj.TotalEquity))
		fmt.Fprintf(tw, "Net proceeds\t%s\n", Money(p, proj.NetProceeds))
		if proj.Underwater {
			fmt.Fprintf(tw, "Underwater\tyes\n")
		}
		fmt.Fprintf(tw, "Buyer\tshare\tproceeds\tprofit\tROI\tannualized\ttaxable\n")
		for _, o := range proj.Outcomes {
			fmt.Fprintf(tw, "%s\t%.2f%%\t%s\t%s\t%.2f%%\t%.2f%%\t%s\n",
				names[o.BuyerID], o.Percentage,
				Money(p, o.NetProceedsShare), Money(p, o.ProfitOrLoss),
				o.SimpleROIPercent, o.AnnualizedROIPercent, Money(p, o.TaxableGain))
		}
	}
	return tw.Flush()
}
