package models

// Account is the external financial-data provider's view of an account
type Account struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Balance     float64 `json:"balance"`
	CreditLimit float64 `json:"creditLimit,omitempty"`
	Nickname    string  `json:"nickname,omitempty"`
}

// Address is a customer's mailing address
type Address struct {
	StreetNumber string `json:"streetNumber"`
	StreetName   string `json:"streetName"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// Customer is the external financial-data provider's view of a customer
type Customer struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Address   Address `json:"address"`
}
