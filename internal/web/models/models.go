package models

import "smartoffice/internal/models"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type AddRuleRequest struct {
	Trigger     models.Trigger `json:"trigger" binding:"required"`
	Action      models.Action  `json:"action" binding:"required"`
	Active      bool           `json:"active"`
	Description string         `json:"description"`
}

type UpdateRuleRequest struct {
	Trigger     *models.Trigger `json:"trigger"`
	Action      *models.Action  `json:"action"`
	Active      *bool           `json:"active"`
	Description *string         `json:"description"`
}

type HVACRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type TemperatureRequest struct {
	Value *int `json:"value" binding:"required"`
}

type LightsRequest struct {
	On *bool `json:"on" binding:"required"`
}

type BookingRequest struct {
	RoomID    int    `json:"room_id" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type CheckinRequest struct {
	Mood string `json:"mood" binding:"required"`
}

type ChatSendRequest struct {
	Message string `json:"message" binding:"required"`
}
