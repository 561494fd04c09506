// Package nessie wraps the external financial-data API. Every call falls
// back to mock data when no API key is configured or the upstream fails, so
// the rest of the system never sees the provider being down.
package nessie

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/creditkeeper/creditkeeper/internal/config"
	"github.com/creditkeeper/creditkeeper/internal/models"
)

// Client handles integration with the financial-data provider
type Client struct {
	baseURL string
	apiKey  string
	useMock bool
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new provider client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL: cfg.NessieBaseURL,
		apiKey:  cfg.NessieAPIKey,
		useMock: cfg.UseMockData,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// IsUsingMockData reports whether the client was configured for mock data
func (c *Client) IsUsingMockData() bool {
	return c.useMock
}

// GetCustomers retrieves all customers
func (c *Client) GetCustomers() ([]models.Customer, error) {
	if c.useMock {
		c.log.Debug("mock data mode: returning mock customer")
		return []models.Customer{MockCustomer()}, nil
	}

	var raw []rawCustomer
	if err := c.getJSON("/customers", &raw); err != nil {
		c.log.Errorf("Failed to fetch customers, falling back to mock data: %v", err)
		return []models.Customer{MockCustomer()}, nil
	}

	customers := make([]models.Customer, 0, len(raw))
	for _, r := range raw {
		customers = append(customers, r.toCustomer())
	}
	return customers, nil
}

// GetCustomer retrieves one customer by id
func (c *Client) GetCustomer(customerID string) (models.Customer, error) {
	if c.useMock {
		return MockCustomer(), nil
	}

	var raw rawCustomer
	if err := c.getJSON("/customers/"+url.PathEscape(customerID), &raw); err != nil {
		c.log.Errorf("Failed to fetch customer %s, falling back to mock data: %v", customerID, err)
		return MockCustomer(), nil
	}
	return raw.toCustomer(), nil
}

// GetAccounts retrieves the accounts of a customer
func (c *Client) GetAccounts(customerID string) ([]models.Account, error) {
	if c.useMock {
		return []models.Account{MockAccount()}, nil
	}

	var raw []rawAccount
	if err := c.getJSON("/customers/"+url.PathEscape(customerID)+"/accounts", &raw); err != nil {
		c.log.Errorf("Failed to fetch accounts for %s, falling back to mock data: %v", customerID, err)
		return []models.Account{MockAccount()}, nil
	}

	accounts := make([]models.Account, 0, len(raw))
	for _, r := range raw {
		accounts = append(accounts, r.toAccount())
	}
	return accounts, nil
}

// GetAccount retrieves one account by id
func (c *Client) GetAccount(accountID string) (models.Account, error) {
	if c.useMock {
		return MockAccount(), nil
	}

	var raw rawAccount
	if err := c.getJSON("/accounts/"+url.PathEscape(accountID), &raw); err != nil {
		c.log.Errorf("Failed to fetch account %s, falling back to mock data: %v", accountID, err)
		return MockAccount(), nil
	}
	return raw.toAccount(), nil
}

// GetPurchases retrieves the purchases of an account
func (c *Client) GetPurchases(accountID string) ([]models.Transaction, error) {
	if c.useMock {
		return MockTransactions(), nil
	}

	var raw []rawPurchase
	if err := c.getJSON("/accounts/"+url.PathEscape(accountID)+"/purchases", &raw); err != nil {
		c.log.Errorf("Failed to fetch purchases for %s, falling back to mock data: %v", accountID, err)
		return MockTransactions(), nil
	}

	transactions := make([]models.Transaction, 0, len(raw))
	for _, r := range raw {
		transactions = append(transactions, r.toTransaction())
	}
	return transactions, nil
}

func (c *Client) getJSON(path string, out interface{}) error {
	u := c.baseURL + path + "?key=" + url.QueryEscape(c.apiKey)

	resp, err := c.client.Get(u)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Provider wire shapes. The API uses snake_case and _id.

type rawAddress struct {
	StreetNumber string `json:"street_number"`
	StreetName   string `json:"street_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

type rawCustomer struct {
	ID        string     `json:"_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Address   rawAddress `json:"address"`
}

func (r rawCustomer) toCustomer() models.Customer {
	return models.Customer{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address: models.Address{
			StreetNumber: r.Address.StreetNumber,
			StreetName:   r.Address.StreetName,
			City:         r.Address.City,
			State:        r.Address.State,
			Zip:          r.Address.Zip,
		},
	}
}

type rawAccount struct {
	ID          string  `json:"_id"`
	Type        string  `json:"type"`
	Balance     float64 `json:"balance"`
	CreditLimit float64 `json:"credit_limit"`
	Nickname    string  `json:"nickname"`
}

func (r rawAccount) toAccount() models.Account {
	return models.Account{
		ID:          r.ID,
		Type:        r.Type,
		Balance:     r.Balance,
		CreditLimit: r.CreditLimit,
		Nickname:    r.Nickname,
	}
}

type rawPurchase struct {
	ID           string  `json:"_id"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	PurchaseDate string  `json:"purchase_date"`
	MerchantID   string  `json:"merchant_id"`
	Medium       string  `json:"medium"`
}

func (r rawPurchase) toTransaction() models.Transaction {
	date, err := time.Parse("2006-01-02", r.PurchaseDate)
	if err != nil {
		date = time.Now()
	}

	description := r.Description
	if description == "" {
		description = "Purchase"
	}

	return models.Transaction{
		ID:          r.ID,
		Description: description,
		Amount:      r.Amount,
		Date:        date,
		Merchant:    r.MerchantID,
		Category:    r.Medium,
	}
}
