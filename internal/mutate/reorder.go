package mutate

import (
	"time"

	"remind-cli/internal/model"
	"remind-cli/internal/tags"
)

// ReorderResult is a merged collection plus the reminders whose rank or
// fields actually changed. Changed is what the caller fans out to the remote
// sync adapter; untouched reminders never appear in it.
type ReorderResult struct {
	Collection []model.Reminder
	Changed    []model.Reminder
}

// MergeReorder folds a reordered subset back into the full collection.
//
// newOrder is a permutation of some visible subset (one day's list, a
// filtered view) and may carry updated field values from a cross-container
// drag (notably DueDate). The merge guarantees:
//
//   - reminders outside newOrder keep their rank and UpdatedAt, unless a
//     rank collision forces a displacement
//   - newOrder members end up in exactly the given relative order
//   - only reminders whose effective position or fields changed are touched,
//     which bounds the downstream persistence/sync churn
//
// Target ranks are found by scanning integers from 0 upward, skipping every
// rank held by a reminder outside the subset. When a target rank is already
// held by an outside reminder, that occupant is displaced to the smallest
// rank free of both target ranks and occupied ranks.
//
// Ids in newOrder that do not exist in the collection are appended as new
// entries at their target rank. Merging an order identical to the current
// one changes nothing, not even UpdatedAt.
func MergeReorder(col []model.Reminder, newOrder []model.Reminder) ReorderResult {
	inOrder := map[string]bool{}
	for _, n := range newOrder {
		inOrder[n.ID] = true
	}

	// Ranks pinned by reminders outside the subset.
	otherRanks := map[int]bool{}
	for i := range col {
		if !inOrder[col[i].ID] {
			otherRanks[col[i].Rank] = true
		}
	}

	// Assign target ranks in newOrder sequence, skipping pinned ranks so the
	// subset interleaves with untouched reminders without collisions.
	targetRank := map[string]int{}
	next := 0
	for _, n := range newOrder {
		for otherRanks[next] {
			next++
		}
		targetRank[n.ID] = next
		next++
	}

	needsRank := map[string]bool{}
	fieldChange := map[string]bool{}
	for _, n := range newOrder {
		c, ok := model.Find(col, n.ID)
		if !ok {
			continue
		}
		if c.Rank != targetRank[n.ID] {
			needsRank[n.ID] = true
		}
		if !sameFields(*c, n) {
			fieldChange[n.ID] = true
		}
	}

	// Ranks that stay claimed: everything outside the subset, plus subset
	// members that keep their rank.
	occupied := map[int]string{}
	for i := range col {
		r := col[i]
		if !inOrder[r.ID] || !needsRank[r.ID] {
			occupied[r.Rank] = r.ID
		}
	}

	targetSet := map[int]bool{}
	for id := range needsRank {
		targetSet[targetRank[id]] = true
	}

	// Outside reminders sitting on a target rank get displaced to a free one.
	displaced := map[string]int{}
	for id := range needsRank {
		occID, held := occupied[targetRank[id]]
		if !held || inOrder[occID] {
			continue
		}
		if _, already := displaced[occID]; already {
			continue
		}
		free := 0
		for {
			_, taken := occupied[free]
			if !taken && !targetSet[free] {
				break
			}
			free++
		}
		displaced[occID] = free
		occupied[free] = occID
	}

	now := time.Now().UTC()
	out := model.CloneAll(col)
	var changed []model.Reminder

	byID := map[string]model.Reminder{}
	for _, n := range newOrder {
		byID[n.ID] = n
	}

	for i := range out {
		r := &out[i]
		if freeRank, ok := displaced[r.ID]; ok {
			r.Rank = freeRank
			r.UpdatedAt = now
			changed = append(changed, r.Clone())
			continue
		}
		if !inOrder[r.ID] || (!needsRank[r.ID] && !fieldChange[r.ID]) {
			continue
		}
		n := byID[r.ID]
		r.Title = n.Title
		r.Notes = n.Notes
		r.Completed = n.Completed
		r.DueDate = cloneDue(n.DueDate)
		r.Tags = tags.FromReminder(n.Title, n.Notes)
		if needsRank[r.ID] {
			r.Rank = targetRank[r.ID]
		}
		r.UpdatedAt = now
		changed = append(changed, r.Clone())
	}

	// Append-to-end policy for ids the collection has never seen.
	for _, n := range newOrder {
		if _, ok := model.Find(col, n.ID); ok || n.ID == "" {
			continue
		}
		r := n.Clone()
		r.Rank = targetRank[n.ID]
		r.Tags = tags.FromReminder(n.Title, n.Notes)
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		r.UpdatedAt = now
		out = append(out, r)
		changed = append(changed, r.Clone())
	}

	Sort(out)
	return ReorderResult{Collection: out, Changed: changed}
}

func sameFields(a, b model.Reminder) bool {
	if a.Title != b.Title || a.Notes != b.Notes || a.Completed != b.Completed {
		return false
	}
	if (a.DueDate == nil) != (b.DueDate == nil) {
		return false
	}
	if a.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
		return false
	}
	return true
}

func cloneDue(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	v := d.UTC()
	return &v
}
