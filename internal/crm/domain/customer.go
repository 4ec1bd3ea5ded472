package domain

// Customer statuses.
const (
	CustomerStatusActive   = "active"
	CustomerStatusPending  = "pending"
	CustomerStatusInactive = "inactive"
)

// Customer is a CRM contact record. The JSON tags are the wire contract and
// must not change. Customers belong to exactly one owner and ids are unique
// only within that owner's collection.
type Customer struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Company     string  `json:"company"`
	Website     string  `json:"website"`
	Status      string  `json:"status"`
	Value       float64 `json:"value"`
	LastContact string  `json:"lastContact"` // YYYY-MM-DD
	Avatar      string  `json:"avatar"`
}

// CustomerPatch is a partial update: nil fields are left unchanged. This
// makes the "omitted = unchanged" merge contract explicit instead of relying
// on dynamic map merging.
type CustomerPatch struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Company     *string  `json:"company"`
	Website     *string  `json:"website"`
	Status      *string  `json:"status"`
	Value       *float64 `json:"value"`
	LastContact *string  `json:"lastContact"`
	Avatar      *string  `json:"avatar"`
}

// Apply merges the patch into the customer.
func (c *Customer) Apply(p CustomerPatch) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Website != nil {
		c.Website = *p.Website
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.Value != nil {
		c.Value = *p.Value
	}
	if p.LastContact != nil {
		c.LastContact = *p.LastContact
	}
	if p.Avatar != nil {
		c.Avatar = *p.Avatar
	}
}
