package model

import "time"

// Admin represents a row in the `authorized_admins` table. Only listed
// addresses can sign in to the back office; there is no self-registration.
type Admin struct {
	ID           uint64    // authorized_admins.id
	Email        string    // authorized_admins.email
	PasswordHash string    // authorized_admins.password_hash (bcrypt)
	CreatedAt    time.Time // authorized_admins.created_at
}

// ConfigEntry is a key/value pair from the `site_config` table. It backs
// free-form site settings edited in the back office (contact address,
// social links, banner text and so on).
type ConfigEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Subscriber is a row in the `newsletter_subscribers` table.
type Subscriber struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
