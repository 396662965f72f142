package weather

// Condition is the display form of a WMO weather code.
type Condition struct {
	Icon        string
	Description string
}

// Precipitation/storm classes, ordered by how much they spoil a round.
const (
	rankClear = iota
	rankLight
	rankHeavy
	rankStorm
)

var conditions = map[int]Condition{
	0:  {"☀️", "Clear sky"},
	1:  {"🌤️", "Mainly clear"},
	2:  {"⛅", "Partly cloudy"},
	3:  {"☁️", "Overcast"},
	45: {"🌫️", "Fog"},
	48: {"🌫️", "Rime fog"},
	51: {"🌧️", "Light drizzle"},
	53: {"🌧️", "Drizzle"},
	55: {"🌧️", "Dense drizzle"},
	61: {"🌧️", "Light rain"},
	63: {"🌧️", "Rain"},
	65: {"🌧️", "Heavy rain"},
	71: {"🌨️", "Light snow"},
	73: {"🌨️", "Snow"},
	75: {"🌨️", "Heavy snow"},
	80: {"🌦️", "Rain showers"},
	81: {"🌦️", "Rain showers"},
	82: {"⛈️", "Violent rain showers"},
	95: {"⛈️", "Thunderstorm"},
	96: {"⛈️", "Thunderstorm with hail"},
	99: {"⛈️", "Severe thunderstorm with hail"},
}

var (
	unknownCondition = Condition{"❓", "Unknown"}
	noDataCondition  = Condition{"➖", "No data"}
)

// LookupCondition maps a weather code to its icon and description.
func LookupCondition(code int) Condition {
	if c, ok := conditions[code]; ok {
		return c
	}
	return unknownCondition
}

func codeRank(code int) int {
	switch code {
	case 95, 96, 99:
		return rankStorm
	case 63, 65, 73, 75, 82:
		return rankHeavy
	case 51, 53, 55, 61, 71, 80, 81:
		return rankLight
	default:
		return rankClear
	}
}
