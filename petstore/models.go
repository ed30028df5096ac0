package petstore

import (
	"time"

	"github.com/s0up4200/apictl/models"
)

// Pet status values
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusSold      = "sold"
)

// Order status values
const (
	OrderPlaced    = "placed"
	OrderApproved  = "approved"
	OrderDelivered = "delivered"
)

// Category groups pets
type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Tag labels a pet
type Tag struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Pet is a pet in the store
type Pet struct {
	ID        int64     `json:"id,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name"`
	PhotoURLs []string  `json:"photoUrls"`
	Tags      []Tag     `json:"tags,omitempty"`
	Status    string    `json:"status,omitempty"`
}

// Order is a purchase order for a pet
type Order struct {
	ID       int64      `json:"id,omitempty"`
	PetID    int64      `json:"petId,omitempty"`
	Quantity int32      `json:"quantity,omitempty"`
	ShipDate *time.Time `json:"shipDate,omitempty"`
	Status   string     `json:"status,omitempty"`
	Complete bool       `json:"complete,omitempty"`
}

// User is a store customer
type User struct {
	ID         int64  `json:"id,omitempty"`
	Username   string `json:"username,omitempty"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	Phone      string `json:"phone,omitempty"`
	UserStatus int32  `json:"userStatus,omitempty"`
}

// ApiResponse is the generic result of upload and mutation calls
type ApiResponse struct {
	Code    int32  `json:"code,omitempty"`
	Type    string `json:"type,omitempty"`
	Message string `json:"message,omitempty"`
}

func (m *Category) Hydrate(attrs map[string]any) error    { return models.Decode(attrs, m) }
func (m *Tag) Hydrate(attrs map[string]any) error         { return models.Decode(attrs, m) }
func (m *Pet) Hydrate(attrs map[string]any) error         { return models.Decode(attrs, m) }
func (m *Order) Hydrate(attrs map[string]any) error       { return models.Decode(attrs, m) }
func (m *User) Hydrate(attrs map[string]any) error        { return models.Decode(attrs, m) }
func (m *ApiResponse) Hydrate(attrs map[string]any) error { return models.Decode(attrs, m) }

var factories = map[string]models.Factory{
	"Category":    func() models.Model { return &Category{} },
	"Tag":         func() models.Model { return &Tag{} },
	"Pet":         func() models.Model { return &Pet{} },
	"Order":       func() models.Model { return &Order{} },
	"User":        func() models.Model { return &User{} },
	"ApiResponse": func() models.Model { return &ApiResponse{} },
}

// Register adds the petstore models to reg. Names that are already
// registered are left untouched.
func Register(reg *models.Registry) error {
	for name, factory := range factories {
		if reg.Has(name) {
			continue
		}
		if err := reg.Register(name, factory); err != nil {
			return err
		}
	}
	return nil
}
