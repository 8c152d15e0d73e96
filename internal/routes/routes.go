package routes

const (
	// Health
	Health = "/health"

	// Public catalog
	Properties   = "/api/v1/properties"
	PropertyByID = "/api/v1/properties/{id}"
	Messages     = "/api/v1/messages"

	// Admin — properties
	AdminProperties     = "/api/v1/admin/properties"
	AdminPropertyByID   = "/api/v1/admin/properties/{id}"
	AdminPropertyImages = "/api/v1/admin/properties/{id}/images"
	AdminImagesOrder    = "/api/v1/admin/properties/{id}/images/order"
	AdminImageByID      = "/api/v1/admin/images/{id}"

	// Admin — messages
	AdminMessages          = "/api/v1/admin/messages"
	AdminMessageStatusByID = "/api/v1/admin/messages/{id}/status"
	AdminMessagePinByID    = "/api/v1/admin/messages/{id}/pin"
	AdminMessageByID       = "/api/v1/admin/messages/{id}"

	// Admin — bulk import
	AdminImportCSV  = "/api/v1/admin/import/csv"
	AdminImportJSON = "/api/v1/admin/import/json"
)
