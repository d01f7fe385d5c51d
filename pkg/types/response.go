package types

// SuccessEnvelope wraps every successful storefront response so the frontend
// always unpacks `data`, whether it holds a product list, a cart, or an order.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public error shape. Details carries field-level validation
// messages for checkout and account forms.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps APIError under `error`.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
