package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a read-only projection of a user record owned by the user service.
// The bill API only resolves ids to display attributes for aggregate
// responses; it never creates, updates, or deletes users.
type User struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	AvatarImage string    `json:"avatar_image"`
}

// Group is a read-only projection of a group record owned by the group
// service. Bills reference groups by id without enforcing existence.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DataCreated time.Time `json:"data_created"`
}
