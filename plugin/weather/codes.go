package weather

// codeDescriptions maps WMO weather interpretation codes to short
// human-readable descriptions.
var codeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snowfall",
	73: "Moderate snowfall",
	75: "Heavy snowfall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeCode returns the description for a WMO weather code.
func DescribeCode(code int) string {
	if desc, ok := codeDescriptions[code]; ok {
		return desc
	}
	return "Unknown conditions"
}

// ConditionID maps a WMO weather code onto the OpenWeatherMap condition
// id space, which existing presentation clients use for icon selection.
func ConditionID(code int) int {
	switch {
	case code == 0:
		return 800
	case code >= 1 && code <= 3:
		// 801 few clouds, 802 scattered, 804 overcast
		return 800 + code
	case code == 45 || code == 48:
		return 741
	case code >= 51 && code <= 57:
		return 300
	case code >= 61 && code <= 67:
		return 500
	case code >= 71 && code <= 77:
		return 600
	case code >= 80 && code <= 82:
		return 521
	case code == 85 || code == 86:
		return 620
	case code >= 95:
		return 200
	default:
		return 800
	}
}
