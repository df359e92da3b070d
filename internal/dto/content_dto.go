package dto

type ReloadContentResponse struct {
	WeeksLoaded int `json:"weeks_loaded"`
}
