package domain

import "time"

// Client is a company account that raises incidents. UserID links the company
// to the user record that receives status-change notifications.
type Client struct {
	ID             string
	UserID         string
	CompanyName    string
	CompanyAddress *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
