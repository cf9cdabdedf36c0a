package models

// MeshCode is the result of encoding a point at a given level.
type MeshCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Level     int     `json:"level"`
	Code      string  `json:"code"`
}
