package dto

type SessionResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}
