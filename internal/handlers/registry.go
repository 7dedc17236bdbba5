package handlers

// AppHandlers bundles the route-owning handlers for registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ArtisanHandler      *ArtisanHandler
	ClientHandler       *ClientHandler
	NotificationHandler *NotificationHandler
}
