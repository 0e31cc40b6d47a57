package models

import "time"

// VelocityPoint is one interval of the resulting time series: the lines
// changed per minute between two chronologically adjacent valid commits,
// dated at the later commit of the pair.
type VelocityPoint struct {
	SHA       string    `json:"sha"`
	Date      time.Time `json:"date"`
	Velocity  float64   `json:"velocity"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Additions int       `json:"additions"`
	Deletions int       `json:"deletions"`
}
