package ports

import "context"

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	Username      string
	Password      string
	Email         string
	Mobile        string
	AcceptanceKey string
}

type RegistrationService interface {
	// Register redeems the acceptance key and creates the user as a single
	// atomic unit. No token is issued; the caller logs in separately.
	Register(ctx context.Context, in RegisterInput) error
	// RequestKey mints a new unused acceptance key and returns its value.
	// The HTTP layer deliberately withholds the value from the response;
	// an admin retrieves it via the key listing.
	RequestKey(ctx context.Context) (string, error)
}
