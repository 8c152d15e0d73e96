package utils

import "errors"

/*
Sentinel errors for catalog domain logic.
The controller can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrPropertyNotFound = errors.New("property_not_found")
	ErrImageNotFound    = errors.New("image_not_found")
	ErrMessageNotFound  = errors.New("message_not_found")
	ErrInvalidSaleState = errors.New("invalid_sale_state")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrOrderMismatch    = errors.New("image_order_mismatch")
)
