// Package reconcile merges the canonical chore catalog with a page's saved
// checklist state.
package reconcile

import "github.com/sandeepkv93/prchecklist/internal/model"

// Reconcile builds the working state for a page. The catalog decides
// membership and titles; saved carries statuses and exclusions forward by
// index. Custom items in saved survive verbatim unless their index now
// belongs to a catalog entry. A nil saved state yields a fresh checklist.
func Reconcile(catalog []model.CatalogEntry, saved *model.ChecklistState) model.ChecklistState {
	if saved == nil {
		return model.NewChecklistState(catalog)
	}

	savedByIndex := make(map[int]model.ChoreItem, len(saved.Items))
	for _, item := range saved.Items {
		if _, dup := savedByIndex[item.Index]; !dup {
			savedByIndex[item.Index] = item
		}
	}

	out := model.ChecklistState{
		Items:    make([]model.ChoreItem, 0, len(catalog)),
		Excluded: make(map[int]bool),
	}
	members := make(map[int]bool, len(catalog))
	for _, c := range catalog {
		if members[c.Index] {
			continue
		}
		members[c.Index] = true
		item := model.ChoreItem{Index: c.Index, Title: c.Title, Status: model.StatusPending}
		if prev, ok := savedByIndex[c.Index]; ok && prev.Status.Storable() {
			item.Status = prev.Status
		}
		out.Items = append(out.Items, item)
	}

	for _, prev := range saved.Items {
		if !prev.Custom || members[prev.Index] {
			continue
		}
		members[prev.Index] = true
		if !prev.Status.Storable() {
			prev.Status = model.StatusPending
		}
		out.Items = append(out.Items, prev)
	}

	for idx, on := range saved.Excluded {
		if on && members[idx] {
			out.Excluded[idx] = true
		}
	}
	return out
}
