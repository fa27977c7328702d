// Package control handles the websocket input protocol and widget dispatch.
package control

// Message is a control websocket payload.
type Message struct {
	T       string  `json:"t"`
	Widget  string  `json:"widget,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Key     string  `json:"key,omitempty"`
	Value   string  `json:"value,omitempty"`
	Step    string  `json:"step,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}
