package ui

import (
	"html/template"
	"net/http"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

// methodologyMarkdown explains the hypothesis test shown on the analysis
// tab.
const methodologyMarkdown = `# Binomial Fairness Test

This tool judges whether the simulated coin behaves like a fair one.

- **H0**: the coin is fair (p = 0.5)
- **H1**: the coin is NOT fair (p != 0.5)
- **Significance level**: alpha = 0.05

## How the p-value is computed

The number of heads in N independent flips follows a binomial
distribution. The two-sided exact test doubles the tail probability on the
observed side of the mean:

- heads at or below N/2: ` + "`p = min(1, 2 * CDF(heads))`" + `
- heads above N/2: ` + "`p = min(1, 2 * (1 - CDF(heads - 1)))`" + `

A p-value above 0.05 means the observed split is consistent with a fair
coin, so the null hypothesis is not rejected.

## Confidence interval

The 95% interval shows the range of head counts a fair coin would produce:
the equal-tailed central interval of the binomial distribution, containing
at least 95% of its probability mass and the expected count N/2.

## One test at a time

Each click runs a single-shot test at a fixed alpha. Repeatedly flipping
and re-testing is not corrected for (no sequential-testing procedure); an
occasional spurious "biased" verdict over many runs is expected.
`

func (a *App) handleMethodology(w http.ResponseWriter, r *http.Request) {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	rendered := markdown.ToHTML([]byte(methodologyMarkdown), p, nil)

	a.renderTemplate(w, "methodology.html", map[string]interface{}{
		"Content": template.HTML(rendered),
	})
}
