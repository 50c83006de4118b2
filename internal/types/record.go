package types

// Record is one row of the gateway file: field 0 is the gateway, field 1 the phone number.
type Record struct {
	GatewayID   string `json:"gateway_id"`
	PhoneNumber string `json:"phone_number"`
}
