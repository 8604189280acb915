package storage

import (
	"fmt"
	"sort"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/planner"
)

// document is the wire layout of a persisted snapshot: the full task
// list plus the schedule mapping keyed by canonical "HH:MM" strings.
type document struct {
	Tasks    []taskRecord     `json:"tasks"`
	Schedule map[string][]int `json:"schedule"`
}

type taskRecord struct {
	ID          int    `json:"id"`
	Description string `json:"task"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
}

func encodeDocument(snap planner.Snapshot) document {
	doc := document{
		Tasks:    make([]taskRecord, 0, len(snap.Tasks)),
		Schedule: make(map[string][]int, len(snap.Slots)),
	}
	for _, task := range snap.Tasks {
		doc.Tasks = append(doc.Tasks, taskRecord{
			ID:          task.ID,
			Description: task.Description,
			Priority:    string(task.Priority),
			Completed:   task.Completed,
			CreatedAt:   task.CreatedAt.Format(model.CreatedAtLayout),
		})
	}
	for _, entry := range snap.Slots {
		ids := make([]int, len(entry.TaskIDs))
		copy(ids, entry.TaskIDs)
		doc.Schedule[entry.Slot.String()] = ids
	}
	return doc
}

func decodeDocument(doc document) (planner.Snapshot, error) {
	snap := planner.Snapshot{
		Tasks: make([]model.Task, 0, len(doc.Tasks)),
		Slots: make([]planner.SlotEntry, 0, len(doc.Schedule)),
	}
	for _, rec := range doc.Tasks {
		createdAt, err := time.Parse(model.CreatedAtLayout, rec.CreatedAt)
		if err != nil {
			return planner.Snapshot{}, fmt.Errorf("task %d created_at: %w", rec.ID, err)
		}
		snap.Tasks = append(snap.Tasks, model.Task{
			ID:          rec.ID,
			Description: rec.Description,
			Priority:    model.NormalizePriority(rec.Priority),
			Completed:   rec.Completed,
			CreatedAt:   createdAt,
		})
	}
	for raw, ids := range doc.Schedule {
		slot, err := model.ParseSlot(raw)
		if err != nil {
			return planner.Snapshot{}, fmt.Errorf("schedule key %q: %w", raw, err)
		}
		taskIDs := make([]int, len(ids))
		copy(taskIDs, ids)
		snap.Slots = append(snap.Slots, planner.SlotEntry{Slot: slot, TaskIDs: taskIDs})
	}
	sort.Slice(snap.Slots, func(i, j int) bool { return snap.Slots[i].Slot < snap.Slots[j].Slot })
	return snap, nil
}
