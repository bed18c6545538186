package models

import "time"

// Trigger is the matching half of an automation rule. Its condition is
// compared key-by-key against incoming event conditions.
type Trigger struct {
	Type      string         `json:"type"`
	Condition map[string]any `json:"condition"`
}

// Action is the effect half of an automation rule.
type Action struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// Rule represents a persisted automation rule
type Rule struct {
	ID          int     `json:"id"`
	Trigger     Trigger `json:"trigger"`
	Action      Action  `json:"action"`
	Active      bool    `json:"active"`
	Description string  `json:"description"`
}

// OfficeState is the singleton office document. All writes are
// single-field updates, never a full replace.
type OfficeState struct {
	Temperature int    `json:"temperature"`
	HVACMode    string `json:"hvac_mode"`
	LightsOn    bool   `json:"lights_on"`
}

// ParkingSpot represents one numbered parking spot
type ParkingSpot struct {
	ID          int  `json:"id"`
	IsAvailable bool `json:"is_available"`
}

// MeetingRoom represents a bookable room
type MeetingRoom struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Equipment []string `json:"equipment"`
}

// Booking represents a meeting-room reservation. Expired bookings are
// purged by the maintenance task.
type Booking struct {
	ID        int       `json:"id"`
	RoomID    int       `json:"room_id"`
	Username  string    `json:"username"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ChatMessage represents an office chat message
type ChatMessage struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// WellnessCheckin represents a mood check-in, retained for seven days
type WellnessCheckin struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

// WellnessResource maps a mood to suggested resources
type WellnessResource struct {
	Mood      string   `json:"mood"`
	Resources []string `json:"resources"`
}

// User represents an account. Password hashes never leave the auth module.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
