package dto

import "time"

type SaveResponse struct {
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name"`
	Day         int       `json:"day"`
	Cash        float64   `json:"cash"`
	SavedAt     time.Time `json:"saved_at"`
}

type ListSavesResponse struct {
	Saves []SaveResponse `json:"saves"`
}
