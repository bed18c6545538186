package db

import (
	"context"
	"fmt"
	"time"

	"smartoffice/internal/models"
)

// officeStateColumns whitelists the fields the engine may touch. The
// update is a single-column SQL write, so concurrent updates to
// different fields never overlap.
var officeStateColumns = map[string]string{
	"temperature": "temperature",
	"hvac_mode":   "hvac_mode",
	"lights_on":   "lights_on",
}

// ReadOfficeState fetches the singleton office state document
func (d *DB) ReadOfficeState(ctx context.Context) (models.OfficeState, error) {
	var state models.OfficeState
	err := d.pool.QueryRow(ctx, "SELECT temperature, hvac_mode, lights_on FROM office_state WHERE id = 'office'").
		Scan(&state.Temperature, &state.HVACMode, &state.LightsOn)
	return state, err
}

// UpdateOfficeStateField updates one field of the office state
func (d *DB) UpdateOfficeStateField(ctx context.Context, field string, value any) error {
	column, ok := officeStateColumns[field]
	if !ok {
		return fmt.Errorf("unknown office state field %q", field)
	}
	_, err := d.pool.Exec(ctx, fmt.Sprintf("UPDATE office_state SET %s = $1 WHERE id = 'office'", column), value)
	return err
}

// ListParkingSpots fetches all parking spots ordered by id
func (d *DB) ListParkingSpots(ctx context.Context) ([]models.ParkingSpot, error) {
	rows, err := d.pool.Query(ctx, "SELECT id, is_available FROM parking_spots ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spots []models.ParkingSpot
	for rows.Next() {
		var s models.ParkingSpot
		if err := rows.Scan(&s.ID, &s.IsAvailable); err != nil {
			return nil, err
		}
		spots = append(spots, s)
	}
	return spots, rows.Err()
}

// UpdateParkingSpot updates fields of one parking spot
func (d *DB) UpdateParkingSpot(ctx context.Context, id int, fields map[string]any) error {
	available, ok := fields["is_available"].(bool)
	if !ok {
		return fmt.Errorf("parking spot update requires is_available")
	}
	tag, err := d.pool.Exec(ctx, "UPDATE parking_spots SET is_available = $1 WHERE id = $2", available, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("parking spot %d not found", id)
	}
	return nil
}

// ListActiveRules fetches rules eligible for matching, in listing order.
// Listing order doubles as the same-field tie-break between matches.
func (d *DB) ListActiveRules(ctx context.Context) ([]models.Rule, error) {
	return d.listRules(ctx, "SELECT id, trigger, action, active, description FROM automation_rules WHERE active ORDER BY id")
}

// ListRules fetches all rules including inactive ones
func (d *DB) ListRules(ctx context.Context) ([]models.Rule, error) {
	return d.listRules(ctx, "SELECT id, trigger, action, active, description FROM automation_rules ORDER BY id")
}

func (d *DB) listRules(ctx context.Context, query string) ([]models.Rule, error) {
	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []models.Rule
	for rows.Next() {
		var r models.Rule
		if err := rows.Scan(&r.ID, &r.Trigger, &r.Action, &r.Active, &r.Description); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// GetRuleByID fetches a rule
func (d *DB) GetRuleByID(ctx context.Context, id int) (*models.Rule, error) {
	var r models.Rule
	err := d.pool.QueryRow(ctx, "SELECT id, trigger, action, active, description FROM automation_rules WHERE id = $1", id).
		Scan(&r.ID, &r.Trigger, &r.Action, &r.Active, &r.Description)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// InsertRule creates a rule and returns it with its assigned id
func (d *DB) InsertRule(ctx context.Context, rule models.Rule) (*models.Rule, error) {
	err := d.pool.QueryRow(ctx,
		"INSERT INTO automation_rules (trigger, action, active, description) VALUES ($1, $2, $3, $4) RETURNING id",
		rule.Trigger, rule.Action, rule.Active, rule.Description).Scan(&rule.ID)
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule replaces a rule's mutable fields
func (d *DB) UpdateRule(ctx context.Context, rule models.Rule) error {
	tag, err := d.pool.Exec(ctx,
		"UPDATE automation_rules SET trigger = $1, action = $2, active = $3, description = $4 WHERE id = $5",
		rule.Trigger, rule.Action, rule.Active, rule.Description, rule.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rule %d not found", rule.ID)
	}
	return nil
}

// DeleteRule removes a rule
func (d *DB) DeleteRule(ctx context.Context, id int) error {
	tag, err := d.pool.Exec(ctx, "DELETE FROM automation_rules WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("rule %d not found", id)
	}
	return nil
}

// ListMeetingRooms fetches all meeting rooms
func (d *DB) ListMeetingRooms(ctx context.Context) ([]models.MeetingRoom, error) {
	rows, err := d.pool.Query(ctx, "SELECT id, name, capacity, equipment FROM meeting_rooms ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.MeetingRoom
	for rows.Next() {
		var room models.MeetingRoom
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Equipment); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// ListBookings fetches all current bookings
func (d *DB) ListBookings(ctx context.Context) ([]models.Booking, error) {
	rows, err := d.pool.Query(ctx, "SELECT id, room_id, username, start_time, end_time FROM meeting_bookings ORDER BY start_time")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.Username, &b.StartTime, &b.EndTime); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// InsertBooking creates a booking unless it overlaps an existing one
// for the same room
func (d *DB) InsertBooking(ctx context.Context, b models.Booking) (*models.Booking, error) {
	var overlaps bool
	err := d.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM meeting_bookings WHERE room_id = $1 AND start_time < $3 AND end_time > $2)",
		b.RoomID, b.StartTime, b.EndTime).Scan(&overlaps)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, fmt.Errorf("room %d is already booked in that window", b.RoomID)
	}

	err = d.pool.QueryRow(ctx,
		"INSERT INTO meeting_bookings (room_id, username, start_time, end_time) VALUES ($1, $2, $3, $4) RETURNING id",
		b.RoomID, b.Username, b.StartTime, b.EndTime).Scan(&b.ID)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBooking removes a booking owned by the given user
func (d *DB) DeleteBooking(ctx context.Context, id int, username string) error {
	tag, err := d.pool.Exec(ctx, "DELETE FROM meeting_bookings WHERE id = $1 AND username = $2", id, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %d not found", id)
	}
	return nil
}

// DeleteExpiredBookings purges bookings whose end time has passed.
// Returns the number of rows removed.
func (d *DB) DeleteExpiredBookings(ctx context.Context, now time.Time) (int64, error) {
	tag, err := d.pool.Exec(ctx, "DELETE FROM meeting_bookings WHERE end_time < $1", now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// InsertCheckin records a wellness check-in
func (d *DB) InsertCheckin(ctx context.Context, username, mood string) error {
	_, err := d.pool.Exec(ctx,
		"INSERT INTO wellness_checkins (username, mood, created_at) VALUES ($1, $2, NOW())", username, mood)
	return err
}

// DeleteStaleCheckins purges check-ins older than the retention window
func (d *DB) DeleteStaleCheckins(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := d.pool.Exec(ctx, "DELETE FROM wellness_checkins WHERE created_at < $1", olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetResourcesByMood looks up suggested wellness resources
func (d *DB) GetResourcesByMood(ctx context.Context, mood string) (*models.WellnessResource, error) {
	res := models.WellnessResource{Mood: mood}
	err := d.pool.QueryRow(ctx, "SELECT resources FROM wellness_resources WHERE mood = $1", mood).Scan(&res.Resources)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListRecentMessages returns the last limit chat messages, oldest first
func (d *DB) ListRecentMessages(ctx context.Context, limit int) ([]models.ChatMessage, error) {
	rows, err := d.pool.Query(ctx,
		"SELECT id, username, message, sent_at FROM (SELECT id, username, message, sent_at FROM chat_messages ORDER BY sent_at DESC LIMIT $1) latest ORDER BY sent_at",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.Username, &m.Message, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// InsertChatMessage stores a chat message and returns it with id and timestamp
func (d *DB) InsertChatMessage(ctx context.Context, username, message string) (*models.ChatMessage, error) {
	m := models.ChatMessage{Username: username, Message: message}
	err := d.pool.QueryRow(ctx,
		"INSERT INTO chat_messages (username, message, sent_at) VALUES ($1, $2, NOW()) RETURNING id, sent_at",
		username, message).Scan(&m.ID, &m.Timestamp)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteChatMessage removes a chat message
func (d *DB) DeleteChatMessage(ctx context.Context, id int) error {
	tag, err := d.pool.Exec(ctx, "DELETE FROM chat_messages WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("message %d not found", id)
	}
	return nil
}
