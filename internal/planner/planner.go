// Package planner owns the task store and the schedule index and keeps
// the two consistent. It performs no I/O; persistence works through
// Snapshot and Restore.
package planner

import (
	"errors"
	"sort"
	"time"

	"github.com/sandeepkv93/dayplan/internal/model"
)

var (
	ErrTaskNotFound = errors.New("planner: task not found")
	ErrInvalidTime  = errors.New("planner: invalid time format")
)

type Planner struct {
	tasks  []model.Task
	nextID int
	slots  map[model.Slot][]int
	order  []model.Slot // active slots, ascending
	now    func() time.Time
}

func New() *Planner {
	return NewWithNow(time.Now)
}

// NewWithNow allows tests to pin creation timestamps.
func NewWithNow(now func() time.Time) *Planner {
	return &Planner{
		nextID: 1,
		slots:  make(map[model.Slot][]int),
		now:    now,
	}
}

// AddTask appends a new incomplete task and returns its id. Ids come
// from a monotonic counter, so deleting tasks never causes an id to be
// handed out twice.
func (p *Planner) AddTask(description string, priority model.Priority) int {
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}
	id := p.nextID
	p.nextID++
	p.tasks = append(p.tasks, model.Task{
		ID:          id,
		Description: description,
		Priority:    priority,
		CreatedAt:   p.now().UTC().Truncate(time.Minute),
	})
	return id
}

// RemoveTask deletes the task and vacates every schedule slot it
// occupies. Absence is an informational outcome, not an error.
func (p *Planner) RemoveTask(id int) bool {
	idx := p.indexOf(id)
	if idx < 0 {
		return false
	}
	p.tasks = append(p.tasks[:idx], p.tasks[idx+1:]...)
	p.Unschedule(id)
	return true
}

// MarkComplete sets completed on the task. Idempotent.
func (p *Planner) MarkComplete(id int) bool {
	idx := p.indexOf(id)
	if idx < 0 {
		return false
	}
	p.tasks[idx].Completed = true
	return true
}

// Tasks returns all tasks in insertion order.
func (p *Planner) Tasks() []model.Task {
	out := make([]model.Task, len(p.tasks))
	copy(out, p.tasks)
	return out
}

// Task returns the task with the given id.
func (p *Planner) Task(id int) (model.Task, bool) {
	idx := p.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return p.tasks[idx], true
}

// SlotOf reports the slot a task is scheduled in, if any.
func (p *Planner) SlotOf(id int) (model.Slot, bool) {
	for _, slot := range p.order {
		for _, taskID := range p.slots[slot] {
			if taskID == id {
				return slot, true
			}
		}
	}
	return 0, false
}

// Schedule places a task into the slot parsed from raw. The time must
// be strict zero-padded "HH:MM"; a parse failure leaves all state
// untouched. Unknown task ids are rejected rather than silently
// indexed. A task already scheduled elsewhere moves: it holds at most
// one slot at a time. Re-scheduling into its current slot is a no-op.
func (p *Planner) Schedule(id int, raw string) error {
	slot, err := model.ParseSlot(raw)
	if err != nil {
		return ErrInvalidTime
	}
	if p.indexOf(id) < 0 {
		return ErrTaskNotFound
	}
	if current, ok := p.SlotOf(id); ok {
		if current == slot {
			return nil
		}
		p.Unschedule(id)
	}
	if _, ok := p.slots[slot]; !ok {
		p.insertSlot(slot)
	}
	p.slots[slot] = append(p.slots[slot], id)
	return nil
}

// Unschedule removes the task from every slot it appears in and drops
// slots left empty. The sweep over all slots is defensive; the
// scheduling rules only ever place a task once.
func (p *Planner) Unschedule(id int) bool {
	found := false
	for i := 0; i < len(p.order); {
		slot := p.order[i]
		ids := p.slots[slot]
		kept := ids[:0]
		for _, taskID := range ids {
			if taskID == id {
				found = true
				continue
			}
			kept = append(kept, taskID)
		}
		if len(kept) == 0 {
			delete(p.slots, slot)
			p.order = append(p.order[:i], p.order[i+1:]...)
			continue
		}
		p.slots[slot] = kept
		i++
	}
	return found
}

type SlotEntry struct {
	Slot    model.Slot
	TaskIDs []int
}

// Agenda returns the occupied slots ascending by time of day, with each
// slot's task ids in insertion order. Empty slots never appear.
func (p *Planner) Agenda() []SlotEntry {
	out := make([]SlotEntry, 0, len(p.order))
	for _, slot := range p.order {
		ids := make([]int, len(p.slots[slot]))
		copy(ids, p.slots[slot])
		out = append(out, SlotEntry{Slot: slot, TaskIDs: ids})
	}
	return out
}

type Snapshot struct {
	Tasks []model.Task
	Slots []SlotEntry
}

// Snapshot captures the full task list and schedule mapping.
func (p *Planner) Snapshot() Snapshot {
	tasks := make([]model.Task, len(p.tasks))
	copy(tasks, p.tasks)
	return Snapshot{Tasks: tasks, Slots: p.Agenda()}
}

// Restore replaces all state with the snapshot. The id counter resumes
// past the highest restored id. Slot entries referencing unknown tasks,
// duplicate ids within a slot, and second placements of an already
// scheduled task are dropped so the schedule index is consistent with
// the task store after every restore.
func (p *Planner) Restore(s Snapshot) {
	p.tasks = make([]model.Task, len(s.Tasks))
	copy(p.tasks, s.Tasks)
	p.slots = make(map[model.Slot][]int)
	p.order = p.order[:0]

	p.nextID = 1
	known := make(map[int]bool, len(p.tasks))
	for _, task := range p.tasks {
		known[task.ID] = true
		if task.ID >= p.nextID {
			p.nextID = task.ID + 1
		}
	}

	placed := make(map[int]bool)
	for _, entry := range s.Slots {
		if !entry.Slot.IsValid() {
			continue
		}
		ids := make([]int, 0, len(entry.TaskIDs))
		for _, id := range entry.TaskIDs {
			if !known[id] || placed[id] {
				continue
			}
			placed[id] = true
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		if _, ok := p.slots[entry.Slot]; !ok {
			p.insertSlot(entry.Slot)
		}
		p.slots[entry.Slot] = append(p.slots[entry.Slot], ids...)
	}
}

func (p *Planner) indexOf(id int) int {
	for i := range p.tasks {
		if p.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Planner) insertSlot(slot model.Slot) {
	at := sort.Search(len(p.order), func(i int) bool { return p.order[i] >= slot })
	p.order = append(p.order, 0)
	copy(p.order[at+1:], p.order[at:])
	p.order[at] = slot
	p.slots[slot] = nil
}
