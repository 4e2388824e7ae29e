package model

type Genre struct {
	ID          string `json:"id"`
	Genre       string `json:"genre"`
	Slug        string `json:"slug"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
