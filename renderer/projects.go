package renderer

import (
	"bytes"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	md "github.com/nao1215/markdown"
)

// ProjectsMarkdown renders the ongoing deposits, crowdfunding and factoring
// projects with their days to maturity on today.
func ProjectsMarkdown(projects []networth.OngoingProject, today date.Date, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Ongoing projects")

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		maturity := "-"
		if p.Maturity != nil && !p.Maturity.IsZero() {
			maturity = p.Maturity.String()
		}
		rows = append(rows, []string{
			p.Name,
			p.Entity,
			string(p.Type),
			p.Amount.String(),
			formatMoney(p.Value, currency),
			formatRate(p.ROI),
			maturity,
			formatDays(p.Status(today)),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Project", "Entity", "Type", "Amount", "Value", "Rate", "Maturity", "Days"},
		Rows:   rows,
	})
	return doc.String()
}
