package dto

import "nettrailer-be/internal/entity"

type AddHistoryRequest struct {
	ContentID       int            `json:"content_id" validate:"required"`
	MediaType       string         `json:"media_type" validate:"required,oneof=movie tv"`
	Progress        float64        `json:"progress" validate:"gte=0,lte=100"`
	Duration        *float64       `json:"duration,omitempty"`
	WatchedDuration *float64       `json:"watched_duration,omitempty"`
	Content         ContentRequest `json:"content" validate:"required"`
}

type MigrateHistoryRequest struct {
	GuestID string `json:"guest_id" validate:"required,startswith=guest_"`
}

type HistoryResponse struct {
	SessionID string              `json:"session_id"`
	History   []entity.WatchEntry `json:"history"`
}
