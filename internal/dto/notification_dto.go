package dto

import "nettrailer-be/internal/model"

type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
	Total         int64                `json:"total"`
	UnreadCount   int64                `json:"unread_count"`
}
