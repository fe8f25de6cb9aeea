package handlers

// HandlerBundle groups the assembled handlers for route registration.
type HandlerBundle struct {
	UserHandler         *UserHandler
	AvailabilityHandler *AvailabilityHandler
	AppointmentHandler  *AppointmentHandler
	DocumentHandler     *DocumentHandler
}
