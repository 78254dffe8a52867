package crm

import "github.com/golfph/gateway/internal/odoo"

// ProfileInput carries the client-supplied profile fields for the upsert
// route. All fields are optional at this layer; the handler enforces which
// keys are required.
type ProfileInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	DateJoined     string `json:"date_joined"`
	DateExpiry     string `json:"date_expiry"`
	SubscriptionID string `json:"subscription_id"`
	ExternalID     string `json:"external_id"`
}

// Values maps the non-empty inputs to their ERP field names, returning the
// value map for the write and the public names of the fields it carries.
// Empty inputs are omitted so a partial payload never blanks remote data.
func (in ProfileInput) Values() (odoo.Values, []string) {
	values := odoo.Values{}
	var written []string
	add := func(field, public, value string) {
		before := len(values)
		values.SetNonEmpty(field, value)
		if len(values) > before {
			written = append(written, public)
		}
	}
	add("name", "name", in.Name)
	add("email", "email", in.Email)
	add("phone", "phone", in.Phone)
	add("street", "address", in.Address)
	add(fieldDateJoined, "date_joined", in.DateJoined)
	add(fieldDateExpiry, "date_expiry", in.DateExpiry)
	add(fieldSubscriptionID, "subscription_id", in.SubscriptionID)
	add(fieldExternalID, "external_id", in.ExternalID)
	return values, written
}
