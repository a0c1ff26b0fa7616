package domain

// Identifiable is the common read interface every aggregate satisfies,
// per §9's "typestate without inheritance" note: callers that only need to
// list or display entities generically can depend on this instead of a
// concrete type, while mutation still goes through each type's own
// constrained set of transition methods.
type Identifiable interface {
	GetID() string
	GetCode() string
	GetName() string
	GetStatus() string
}

func (c Company) GetID() string     { return c.ID }
func (c Company) GetCode() string   { return c.Code }
func (c Company) GetName() string   { return c.Name }
func (c Company) GetStatus() string { return c.Status }

func (p Project) GetID() string     { return p.ID }
func (p Project) GetCode() string   { return p.Code }
func (p Project) GetName() string   { return p.Name }
func (p Project) GetStatus() string { return p.Status }

func (t Task) GetID() string     { return t.ID }
func (t Task) GetCode() string   { return t.Code }
func (t Task) GetName() string   { return t.Name }
func (t Task) GetStatus() string { return t.Status }

func (r Resource) GetID() string     { return r.ID }
func (r Resource) GetCode() string   { return r.Code }
func (r Resource) GetName() string   { return r.Name }
func (r Resource) GetStatus() string { return r.Status }
