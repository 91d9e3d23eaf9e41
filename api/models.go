package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the account role assigned by the backend.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleDealer Role = "DEALER"
)

// ParseRole maps free-form input onto a known role. Unknown input is a buyer.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleDealer)) {
		return RoleDealer
	}
	return RoleBuyer
}

type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// FullName returns "First Last", falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

func (u User) IsDealer() bool { return u.Role == RoleDealer }
func (u User) IsBuyer() bool  { return u.Role == RoleBuyer }

type AuthResponse struct {
	Token         string         `json:"token"`
	UserID        int            `json:"user_id"`
	Username      string         `json:"username"`
	Email         string         `json:"email"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	Role          Role           `json:"role"`
	DealerProfile *DealerProfile `json:"dealer_profile,omitempty"`
	BuyerProfile  *BuyerProfile  `json:"buyer_profile,omitempty"`
}

// User extracts the account part of a login response.
func (r AuthResponse) User() User {
	return User{
		ID:        r.UserID,
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      r.Role,
	}
}

type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      Role   `json:"role"`
}

type Credentials struct {
	// Username may be a username or an email address.
	Username string `json:"username"`
	Password string `json:"password"`
}

type DealerProfile struct {
	ID        int    `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at,omitempty"`
}

type BuyerProfile struct {
	ID        int    `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	CarCount int    `json:"car_count,omitempty"`
}

type Dealer struct {
	ID        int    `json:"id"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CarCount  int    `json:"car_count,omitempty"`
}

// DisplayName prefers the business name over the contact name.
func (d Dealer) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	if name := strings.TrimSpace(d.FirstName + " " + d.LastName); name != "" {
		return name
	}
	return fmt.Sprintf("Dealer #%d", d.ID)
}

// DealerRef is either a bare dealer ID or an embedded dealer object.
type DealerRef struct {
	ID     int
	Dealer *Dealer
}

func (r *DealerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = DealerRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var d Dealer
		if err := json.Unmarshal(data, &d); err != nil {
			return err
		}
		*r = DealerRef{ID: d.ID, Dealer: &d}
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("dealer: %w", err)
	}
	*r = DealerRef{ID: id}
	return nil
}

func (r DealerRef) MarshalJSON() ([]byte, error) {
	if r.Dealer != nil {
		return json.Marshal(r.Dealer)
	}
	return json.Marshal(r.ID)
}

// CategoryRef is null, a bare category ID, or an embedded category object.
type CategoryRef struct {
	ID       int
	Category *Category
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = CategoryRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var c Category
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*r = CategoryRef{ID: c.ID, Category: &c}
		return nil
	}
	var id int
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	*r = CategoryRef{ID: id}
	return nil
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	switch {
	case r.Category != nil:
		return json.Marshal(r.Category)
	case r.ID == 0:
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// Name returns the category name when it was embedded.
func (r CategoryRef) Name() string {
	if r.Category == nil {
		return ""
	}
	return r.Category.Name
}

// Decimal is a backend decimal value. The backend serializes decimals as
// strings, but aggregates arrive as JSON numbers, so both are accepted.
type Decimal string

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decimal: %w", err)
	}
	*d = Decimal(n.String())
	return nil
}

func (d Decimal) String() string { return string(d) }

type CarImage struct {
	ID        int    `json:"id"`
	Car       int    `json:"car,omitempty"`
	Image     string `json:"image"`
	ImageURL  string `json:"image_url,omitempty"`
	Order     int    `json:"order"`
	CreatedAt string `json:"created_at,omitempty"`
}

// URL returns the absolute image URL when the backend provides one.
func (i CarImage) URL() string {
	if i.ImageURL != "" {
		return i.ImageURL
	}
	return i.Image
}

type Car struct {
	ID            int         `json:"id"`
	Dealer        DealerRef   `json:"dealer"`
	Category      CategoryRef `json:"category"`
	Title         string      `json:"title"`
	Make          string      `json:"make"`
	Model         string      `json:"model"`
	Location      string      `json:"location"`
	Year          int         `json:"year"`
	Price         Decimal     `json:"price"`
	Mileage       *int        `json:"mileage"`
	Transmission  string      `json:"transmission"`
	FuelType      string      `json:"fuel_type"`
	Condition     string      `json:"condition"`
	Description   string      `json:"description"`
	Published     bool        `json:"published"`
	CreatedAt     time.Time   `json:"created_at"`
	Images        []CarImage  `json:"images,omitempty"`
	PrimaryImage  string      `json:"primary_image,omitempty"`
	Reviews       []Review    `json:"reviews,omitempty"`
	AverageRating float64     `json:"average_rating"`
	ReviewCount   int         `json:"review_count"`
	IsFavorited   bool        `json:"is_favorited"`
}

// CoverImage returns the primary image, else the lowest-ordered image.
func (c Car) CoverImage() string {
	if c.PrimaryImage != "" {
		return c.PrimaryImage
	}
	var cover *CarImage
	for i := range c.Images {
		if cover == nil || c.Images[i].Order < cover.Order {
			cover = &c.Images[i]
		}
	}
	if cover == nil {
		return ""
	}
	return cover.URL()
}

// Name is "Year Make Model", used where a title is missing.
func (c Car) Name() string {
	return strings.TrimSpace(fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model))
}

// CarInput is the writable part of a car listing.
type CarInput struct {
	Title        string `json:"title"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Price        string `json:"price"`
	Mileage      *int   `json:"mileage"`
	Location     string `json:"location"`
	Condition    string `json:"condition"`
	Description  string `json:"description"`
	Transmission string `json:"transmission"`
	FuelType     string `json:"fuel_type"`
	Category     *int   `json:"category"`
	Published    *bool  `json:"published,omitempty"`
}

type ReviewUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns the reviewer's full name, falling back to the username.
func (u ReviewUser) DisplayName() string {
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Username
}

type Review struct {
	ID        int        `json:"id"`
	User      ReviewUser `json:"user"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
}

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type Favorite struct {
	ID        int       `json:"id"`
	Car       Car       `json:"car"`
	CreatedAt time.Time `json:"created_at"`
}

type Dealership struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
	Locations   []string `json:"locations"`
	Website     string   `json:"website"`
	AvatarURL   string   `json:"avatar_url"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Rating      float64  `json:"rating"`
	TotalCars   int      `json:"total_cars"`
	Verified    bool     `json:"verified"`
}

type DealershipInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Specialties []string `json:"specialties"`
	Locations   []string `json:"locations"`
	Website     string   `json:"website"`
}

type Stats struct {
	TotalCars     int      `json:"total_cars"`
	TotalDealers  int      `json:"total_dealers"`
	AveragePrice  Decimal  `json:"average_price"`
	Makes         []string `json:"makes"`
	FuelTypes     []string `json:"fuel_types"`
	Transmissions []string `json:"transmissions"`
}

type Suggestion struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CarPage is one page of the public car listing.
type CarPage struct {
	Cars     []Car
	Count    int
	Next     string
	Previous string
}
