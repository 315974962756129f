package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/networth"
	md "github.com/nao1215/markdown"
)

// DraftsMarkdown renders merged entries of one product type, flagging the
// ones that come from drafts. deleted lists the ids removed by the session.
func DraftsMarkdown[E networth.Valued](title string, items []networth.DisplayItem[E, networth.ManualDraft[E]], deleted []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2(title)

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		v := it.Position.Valuation()
		entity := ""
		if it.Draft != nil {
			entity = it.Draft.EntityName
			if entity == "" {
				entity = it.Draft.EntityID
			}
		}
		rows = append(rows, []string{it.Key, entity, v.String(), draftStatus(it)})
	}
	doc.Table(md.TableSet{Header: []string{"Key", "Entity", "Value", "Status"}, Rows: rows})

	if len(deleted) > 0 {
		doc.PlainText(fmt.Sprintf("Deleted: %s", strings.Join(deleted, ", ")))
	}
	return doc.String()
}

func draftStatus[P, D any](it networth.DisplayItem[P, D]) string {
	var flags []string
	if it.IsManual {
		flags = append(flags, "manual")
	}
	if it.IsNew {
		flags = append(flags, "new")
	}
	if it.IsDirty {
		flags = append(flags, "edited")
	}
	if len(flags) == 0 {
		return "synced"
	}
	return strings.Join(flags, ", ")
}
