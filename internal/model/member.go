package model

// Member is a household participant who can create bills, pay them, or
// receive SMS reminders. Phone, when set, must already be E.164.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}
