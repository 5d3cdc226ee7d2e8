package types

// SuccessEnvelope wraps every successful storefront API response.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public projection of a coded error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every failed storefront API response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
