package domains

// Merchant is the single dashboard account. Credentials come from config.
type Merchant struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
