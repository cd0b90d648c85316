/*
roster.go - The employee collection and union secondary index

PURPOSE:
  Roster owns the full employee state: the id -> employee map, the
  insertion order (name search and reports depend on it), the union id
  secondary index, and the id counters. It is the unit the snapshot stack
  copies.

INVARIANTS:
  1. Ids are "emp" + counter; the counter only ever grows (undo aside).
  2. The union index maps every active union id to exactly one employee;
     any mutation that touches union status keeps it consistent.
  3. Clone is a deep copy: employees, ledgers, order and index share no
     storage with the original.

SEE ALSO:
  - history.go: the snapshot stack that clones rosters
  - engine.go: the only writer
*/
package payroll

import (
	"fmt"
	"strings"
)

// =============================================================================
// ROSTER
// =============================================================================

type Roster struct {
	employees map[EmployeeID]Employee
	order     []EmployeeID
	unions    map[UnionID]EmployeeID

	// counter feeds id generation and is carried through snapshots, so an
	// undo also rolls the counter back.
	counter int
}

func NewRoster() *Roster {
	return &Roster{
		employees: make(map[EmployeeID]Employee),
		unions:    make(map[UnionID]EmployeeID),
		counter:   1,
	}
}

// =============================================================================
// EMPLOYEE ACCESS
// =============================================================================

// Add stores a new employee under a freshly generated id.
func (r *Roster) Add(e Employee) EmployeeID {
	id := EmployeeID(fmt.Sprintf("emp%d", r.counter))
	r.counter++
	r.employees[id] = e
	r.order = append(r.order, id)
	return id
}

func (r *Roster) Get(id EmployeeID) (Employee, bool) {
	e, ok := r.employees[id]
	return e, ok
}

// Replace swaps the stored record under an existing id, used by category
// changes. Insertion order is unchanged.
func (r *Roster) Replace(id EmployeeID, e Employee) {
	r.employees[id] = e
}

// Remove deletes an employee. An active union membership releases its id.
func (r *Roster) Remove(id EmployeeID) {
	e, ok := r.employees[id]
	if !ok {
		return
	}
	if u := e.Profile().Union; u != nil {
		delete(r.unions, u.ID)
	}
	delete(r.employees, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Roster) Count() int { return len(r.employees) }

// Each visits employees in insertion order.
func (r *Roster) Each(fn func(id EmployeeID, e Employee)) {
	for _, id := range r.order {
		fn(id, r.employees[id])
	}
}

// FindByName returns the id of the index-th employee (1-based) whose name
// contains the given substring, scanning in insertion order.
func (r *Roster) FindByName(name string, index int) (EmployeeID, bool) {
	count := 0
	for _, id := range r.order {
		if strings.Contains(r.employees[id].Profile().Name, name) {
			count++
			if count == index {
				return id, true
			}
		}
	}
	return "", false
}

// =============================================================================
// UNION INDEX
// =============================================================================

// UnionMember resolves a union id to the employee holding it.
func (r *Roster) UnionMember(uid UnionID) (EmployeeID, bool) {
	id, ok := r.unions[uid]
	return id, ok
}

// BindUnion records uid as held by id, releasing the employee's previous
// binding if the id changed.
func (r *Roster) BindUnion(uid UnionID, id EmployeeID) {
	if e, ok := r.employees[id]; ok {
		if prev := e.Profile().Union; prev != nil && prev.ID != uid {
			delete(r.unions, prev.ID)
		}
	}
	r.unions[uid] = id
}

// ReleaseUnion frees a union id for reuse.
func (r *Roster) ReleaseUnion(uid UnionID) {
	delete(r.unions, uid)
}

// =============================================================================
// VALUE SEMANTICS
// =============================================================================

// Clone deep-copies the entire roster.
func (r *Roster) Clone() *Roster {
	out := &Roster{
		employees: make(map[EmployeeID]Employee, len(r.employees)),
		order:     make([]EmployeeID, len(r.order)),
		unions:    make(map[UnionID]EmployeeID, len(r.unions)),
		counter:   r.counter,
	}
	for id, e := range r.employees {
		out.employees[id] = e.Clone()
	}
	copy(out.order, r.order)
	for uid, id := range r.unions {
		out.unions[uid] = id
	}
	return out
}
