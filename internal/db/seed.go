package db

import (
	"context"
	"fmt"

	"smartoffice/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS office_state (
		id          TEXT PRIMARY KEY,
		temperature INT NOT NULL,
		hvac_mode   TEXT NOT NULL,
		lights_on   BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS parking_spots (
		id           INT PRIMARY KEY,
		is_available BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS automation_rules (
		id          SERIAL PRIMARY KEY,
		trigger     JSONB NOT NULL,
		action      JSONB NOT NULL,
		active      BOOLEAN NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS meeting_rooms (
		id        SERIAL PRIMARY KEY,
		name      TEXT NOT NULL,
		capacity  INT NOT NULL,
		equipment TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS meeting_bookings (
		id         SERIAL PRIMARY KEY,
		room_id    INT NOT NULL REFERENCES meeting_rooms(id),
		username   TEXT NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		end_time   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id       SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role     TEXT NOT NULL DEFAULT 'user'
	)`,
	`CREATE TABLE IF NOT EXISTS wellness_checkins (
		id         SERIAL PRIMARY KEY,
		username   TEXT NOT NULL,
		mood       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS wellness_resources (
		mood      TEXT PRIMARY KEY,
		resources TEXT[] NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		id       SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		message  TEXT NOT NULL,
		sent_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Bootstrap creates the schema and seeds default data into empty
// tables: the office state document, the numbered parking spots, the
// two stock automation rules, meeting rooms, wellness resources, and
// the admin/user accounts.
func (d *DB) Bootstrap(ctx context.Context, parkingSpots int) error {
	for _, stmt := range schema {
		if _, err := d.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := d.seedOfficeState(ctx); err != nil {
		return err
	}
	if err := d.seedParkingSpots(ctx, parkingSpots); err != nil {
		return err
	}
	if err := d.seedRules(ctx); err != nil {
		return err
	}
	if err := d.seedMeetingRooms(ctx); err != nil {
		return err
	}
	if err := d.seedWellnessResources(ctx); err != nil {
		return err
	}
	return d.seedUsers(ctx)
}

func (d *DB) seedOfficeState(ctx context.Context) error {
	_, err := d.pool.Exec(ctx,
		"INSERT INTO office_state (id, temperature, hvac_mode, lights_on) VALUES ('office', 21, 'off', false) ON CONFLICT (id) DO NOTHING")
	return err
}

func (d *DB) seedParkingSpots(ctx context.Context, count int) error {
	if count <= 0 {
		count = 20
	}
	for id := 1; id <= count; id++ {
		if _, err := d.pool.Exec(ctx,
			"INSERT INTO parking_spots (id, is_available) VALUES ($1, true) ON CONFLICT (id) DO NOTHING", id); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) seedRules(ctx context.Context) error {
	var count int
	if err := d.pool.QueryRow(ctx, "SELECT COUNT(*) FROM automation_rules").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Rule{
		{
			Trigger:     models.Trigger{Type: "motion", Condition: map[string]any{"area": "main_office"}},
			Action:      models.Action{Type: "lights_on"},
			Active:      true,
			Description: "Turn lights on when motion detected.",
		},
		{
			Trigger:     models.Trigger{Type: "time", Condition: map[string]any{"time": "19:00"}},
			Action:      models.Action{Type: "hvac_off"},
			Active:      true,
			Description: "Turn off HVAC at 7 PM.",
		},
	}
	for _, rule := range defaults {
		if _, err := d.InsertRule(ctx, rule); err != nil {
			return err
		}
	}
	log.Info().Int("rules", len(defaults)).Msg("seeded default automation rules")
	return nil
}

func (d *DB) seedMeetingRooms(ctx context.Context) error {
	var count int
	if err := d.pool.QueryRow(ctx, "SELECT COUNT(*) FROM meeting_rooms").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rooms := []models.MeetingRoom{
		{Name: "Neo", Capacity: 4, Equipment: []string{"Display", "Whiteboard"}},
		{Name: "Trinity", Capacity: 8, Equipment: []string{"Video Conf", "Whiteboard"}},
		{Name: "Morpheus", Capacity: 12, Equipment: []string{"Projector"}},
	}
	for _, room := range rooms {
		if _, err := d.pool.Exec(ctx,
			"INSERT INTO meeting_rooms (name, capacity, equipment) VALUES ($1, $2, $3)",
			room.Name, room.Capacity, room.Equipment); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) seedWellnessResources(ctx context.Context) error {
	resources := map[string][]string{
		"stress": {"Breathing exercises", "Take a walk"},
		"tired":  {"Drink water", "Coffee break"},
		"sad":    {"Call a friend", "Talk to HR"},
	}
	for mood, list := range resources {
		if _, err := d.pool.Exec(ctx,
			"INSERT INTO wellness_resources (mood, resources) VALUES ($1, $2) ON CONFLICT (mood) DO NOTHING",
			mood, list); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) seedUsers(ctx context.Context) error {
	var count int
	if err := d.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		username, password, role string
	}{
		{"admin", "admin123", "admin"},
		{"user", "user123", "user"},
	}
	for _, u := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := d.pool.Exec(ctx,
			"INSERT INTO users (username, password, role) VALUES ($1, $2, $3)",
			u.username, string(hash), u.role); err != nil {
			return err
		}
	}
	log.Warn().Msg("seeded default accounts, change the passwords")
	return nil
}
