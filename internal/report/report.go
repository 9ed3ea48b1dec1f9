// Package report renders a checklist as the markdown "PR checklist" that is
// pasted into a pull request description.
package report

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/prchecklist/internal/model"
)

const (
	separator          = "-------------------"
	checklistHeading   = "### PR Checklist"
	notApplicableTitle = "### Not applicable"
	notApplicableLabel = "Not applicable"
)

// Source is the read side of a checklist. *checklist.Model implements it.
type Source interface {
	Items() []model.ChoreItem
	IsExcluded(index int) bool
}

type Options struct {
	// NotApplicableStatus adds a Status column reading "Not applicable" to
	// the not-applicable table.
	NotApplicableStatus bool
}

// Generate renders src. Rows keep item order; the not-applicable section
// is omitted when nothing is excluded. Output has no surrounding whitespace.
func Generate(src Source, opts Options) string {
	active := make([]model.ChoreItem, 0)
	excluded := make([]model.ChoreItem, 0)
	for _, item := range src.Items() {
		if src.IsExcluded(item.Index) {
			excluded = append(excluded, item)
			continue
		}
		active = append(active, item)
	}

	var b strings.Builder
	writeHeading(&b, checklistHeading)
	b.WriteString("| **Index** | **Review task** | **Status** |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, item := range active {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", item.Index, cell(item.Title), doneLabel(item))
	}

	if len(excluded) > 0 {
		b.WriteString("\n")
		writeHeading(&b, notApplicableTitle)
		if opts.NotApplicableStatus {
			b.WriteString("| **Index** | **Review task** | **Status** |\n")
			b.WriteString("| --- | --- | --- |\n")
		} else {
			b.WriteString("| **Index** | **Review task** |\n")
			b.WriteString("| --- | --- |\n")
		}
		for _, item := range excluded {
			if opts.NotApplicableStatus {
				fmt.Fprintf(&b, "| %d | %s | %s |\n", item.Index, cell(item.Title), notApplicableLabel)
			} else {
				fmt.Fprintf(&b, "| %d | %s |\n", item.Index, cell(item.Title))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// FromState adapts a bare state to Source.
func FromState(state model.ChecklistState) Source {
	return stateSource{state: state}
}

type stateSource struct {
	state model.ChecklistState
}

func (s stateSource) Items() []model.ChoreItem  { return s.state.Items }
func (s stateSource) IsExcluded(index int) bool { return s.state.Excluded[index] }

func writeHeading(b *strings.Builder, heading string) {
	b.WriteString(separator + "\n")
	b.WriteString(heading + "\n")
	b.WriteString(separator + "\n")
}

func doneLabel(item model.ChoreItem) string {
	if item.Done() {
		return "Yes"
	}
	return "No"
}

// cell keeps a title on one table row.
func cell(title string) string {
	title = strings.ReplaceAll(title, "\r\n", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	return strings.ReplaceAll(title, "|", `\|`)
}
