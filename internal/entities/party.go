package entities

// Party is a named group of users sharing a set of tasks. The leader is
// always a member; membership only grows.
type Party struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Leader  string       `json:"leader"`
	Members []string     `json:"members"`
	Tasks   []*PartyTask `json:"tasks"`
}

// PartyTask is a shared quest tracked per member. CompletedBy is a
// grow-only subset of the party's members with no duplicates.
type PartyTask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	CompletedBy []string   `json:"completedBy"`
}

// GetID implements core.Entity
func (p *Party) GetID() string { return p.ID }

// GetType implements core.Entity
func (p *Party) GetType() string { return "party" }

// IsLeader reports whether username leads the party
func (p *Party) IsLeader(username string) bool {
	return p.Leader == username
}

// HasMember reports whether username belongs to the party
func (p *Party) HasMember(username string) bool {
	for _, m := range p.Members {
		if m == username {
			return true
		}
	}
	return false
}

// TaskByID returns the party task with the given id, or nil
func (p *Party) TaskByID(id string) *PartyTask {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// HasCompleted reports whether username already completed the task
func (t *PartyTask) HasCompleted(username string) bool {
	for _, u := range t.CompletedBy {
		if u == username {
			return true
		}
	}
	return false
}

// FullyComplete is the derived condition: every member has completed the
// task. It is never stored.
func (p *Party) FullyComplete(t *PartyTask) bool {
	if len(t.CompletedBy) != len(p.Members) {
		return false
	}
	for _, m := range p.Members {
		if !t.HasCompleted(m) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy
func (p *Party) Clone() *Party {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Members = append([]string(nil), p.Members...)
	cp.Tasks = make([]*PartyTask, len(p.Tasks))
	for i, t := range p.Tasks {
		tc := *t
		tc.CompletedBy = append([]string(nil), t.CompletedBy...)
		cp.Tasks[i] = &tc
	}
	return &cp
}
