package google

// Event palette of Google Calendar, keyed by colorId.
var eventColors = map[string]string{
	"1":  "#7986CB",
	"2":  "#33B679",
	"3":  "#8E24AA",
	"4":  "#E67C73",
	"5":  "#F6BF26",
	"6":  "#F4511E",
	"7":  "#039BE5",
	"8":  "#616161",
	"9":  "#3F51B5",
	"10": "#0B8043",
	"11": "#D50000",
}

// ColorHex resolves a colorId, returning fallback for unset or unknown ids.
func ColorHex(colorID, fallback string) string {
	if hex, ok := eventColors[colorID]; ok {
		return hex
	}
	return fallback
}
