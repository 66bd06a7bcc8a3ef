package domain

// NoTowersMessage is the placeholder row text for an empty selection.
const NoTowersMessage = "No towers found for the selected type."

// SummaryRow is one line of the ranked tower list.
type SummaryRow struct {
	TypeIcon      string `json:"type_icon,omitempty"`
	SignalIcon    string `json:"signal_icon,omitempty"`
	Type          string `json:"type,omitempty"`
	Range         string `json:"range,omitempty"`
	SignalQuality string `json:"signal_quality,omitempty"`
	Distance      string `json:"distance,omitempty"`

	Placeholder bool   `json:"placeholder,omitempty"`
	Message     string `json:"message,omitempty"`
}
