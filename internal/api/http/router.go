package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"lendly/internal/security"
	"lendly/internal/service"
)

// RouterDeps collects everything the REST surface needs.
type RouterDeps struct {
	Bookings      service.BookingService
	Items         service.ItemService
	Users         service.UserService
	Chats         service.ChatService
	Notifications service.NotificationService
	Tokens        security.TokenManager
	// HealthCheck reports readiness of the backing store.
	HealthCheck func() error
}

// NewRouter mounts the API under /api behind bearer-token auth, with
// /healthz open for probes.
func NewRouter(deps RouterDeps) *mux.Router {
	root := mux.NewRouter()
	root.Use(Recovery, Logging)

	root.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if deps.HealthCheck != nil {
			if err := deps.HealthCheck(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := root.PathPrefix("/api").Subrouter()
	api.Use(Auth(deps.Tokens))

	items := NewItemHandler(deps.Items)
	api.HandleFunc("/items", items.List).Methods("GET")
	api.HandleFunc("/items/user/{userID}", items.ListByOwner).Methods("GET")
	api.HandleFunc("/items/rentedBy/{userID}", items.ListRentedBy).Methods("GET")
	api.HandleFunc("/items/rentedFrom/{userID}", items.ListRentedOut).Methods("GET")
	api.HandleFunc("/items/{id}", items.Get).Methods("GET")
	api.HandleFunc("/items/{id}/rates", items.Rates).Methods("GET")

	users := NewUserHandler(deps.Users)
	api.HandleFunc("/users", users.List).Methods("GET")
	api.HandleFunc("/users/bulk", users.GetBulk).Methods("GET")
	api.HandleFunc("/users/{id}", users.Get).Methods("GET")

	requests := NewRequestHandler(deps.Bookings)
	api.HandleFunc("/requests", requests.Create).Methods("POST")
	api.HandleFunc("/requests/to-user", requests.ListToUser).Methods("GET")
	api.HandleFunc("/requests/from-user", requests.ListFromUser).Methods("GET")
	api.HandleFunc("/requests/{id}", requests.Get).Methods("GET")
	api.HandleFunc("/requests/{id}/accept", requests.Accept).Methods("PATCH")
	api.HandleFunc("/requests/{id}/deny", requests.Deny).Methods("PATCH")
	api.HandleFunc("/requests/{id}/return", requests.Return).Methods("PATCH")
	api.HandleFunc("/qr/scan", requests.Scan).Methods("PATCH")

	chats := NewChatHandler(deps.Chats)
	api.HandleFunc("/chats/user/{userID}", chats.ListForUser).Methods("GET")
	api.HandleFunc("/chats/{id}", chats.Get).Methods("GET")
	api.HandleFunc("/messages/read", chats.MarkRead).Methods("PATCH")
	api.HandleFunc("/messages/{chatID}", chats.ListMessages).Methods("GET")
	api.HandleFunc("/messages", chats.SendMessage).Methods("POST")

	notifications := NewNotificationHandler(deps.Notifications)
	api.HandleFunc("/notifications", notifications.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", notifications.MarkAsRead).Methods("PATCH")

	return root
}
