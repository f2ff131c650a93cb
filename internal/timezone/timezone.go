package timezone

import (
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

var airportZones = map[string]string{
	// Scandinavia
	"CPH": "Europe/Copenhagen", // Copenhagen - Kastrup
	"BLL": "Europe/Copenhagen", // Billund
	"AAR": "Europe/Copenhagen", // Aarhus
	"ARN": "Europe/Stockholm",  // Stockholm - Arlanda
	"OSL": "Europe/Oslo",       // Oslo - Gardermoen
	"HEL": "Europe/Helsinki",   // Helsinki - Vantaa

	// Central and Western Europe
	"BER": "Europe/Berlin",    // Berlin - Brandenburg
	"FRA": "Europe/Berlin",    // Frankfurt
	"MUC": "Europe/Berlin",    // Munich
	"HAM": "Europe/Berlin",    // Hamburg
	"AMS": "Europe/Amsterdam", // Amsterdam - Schiphol
	"BRU": "Europe/Brussels",  // Brussels
	"CDG": "Europe/Paris",     // Paris - Charles de Gaulle
	"ORY": "Europe/Paris",     // Paris - Orly
	"LHR": "Europe/London",    // London - Heathrow
	"LGW": "Europe/London",    // London - Gatwick
	"DUB": "Europe/Dublin",    // Dublin
	"ZRH": "Europe/Zurich",    // Zurich
	"VIE": "Europe/Vienna",    // Vienna
	"PRG": "Europe/Prague",    // Prague
	"WAW": "Europe/Warsaw",    // Warsaw - Chopin

	// Southern Europe
	"FCO": "Europe/Rome",   // Rome - Fiumicino
	"MXP": "Europe/Rome",   // Milan - Malpensa
	"MAD": "Europe/Madrid", // Madrid - Barajas
	"BCN": "Europe/Madrid", // Barcelona - El Prat
	"LIS": "Europe/Lisbon", // Lisbon
	"ATH": "Europe/Athens", // Athens

	// Long haul
	"IST": "Europe/Istanbul",  // Istanbul
	"DXB": "Asia/Dubai",       // Dubai
	"DEL": "Asia/Kolkata",     // Delhi
	"CGK": "Asia/Jakarta",     // Jakarta - Soekarno-Hatta
	"DPS": "Asia/Makassar",    // Bali - Ngurah Rai
	"JFK": "America/New_York", // New York - JFK
}

var (
	locMu     sync.RWMutex
	locations = map[string]*time.Location{}
)

// GetZoneByAirport returns the IANA zone name for an airport, "UTC" when the
// airport is unknown.
func GetZoneByAirport(code string) string {
	if zone, ok := airportZones[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return zone
	}
	return "UTC"
}

func GetLocationByAirport(code string) *time.Location {
	return GetLocationByName(GetZoneByAirport(code))
}

func GetLocationByName(name string) *time.Location {
	locMu.RLock()
	loc, ok := locations[name]
	locMu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}

	locMu.Lock()
	locations[name] = loc
	locMu.Unlock()

	return loc
}

func ParseTimeWithOffset(timeStr string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05-0700", // Without colon
		"2006-01-02T15:04-07:00",
		"2006-01-02 15:04:05-07:00",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

// ParseAtAirport parses a timestamp and, when it has no offset, interprets it
// as local time at the given airport. Timestamps with an offset are converted
// to the airport's zone so their calendar date is the local one.
func ParseAtAirport(timeStr string, airportCode string) (time.Time, error) {
	loc := GetLocationByAirport(airportCode)

	if t, err := ParseTimeWithOffset(timeStr); err == nil {
		return t.In(loc), nil
	}

	naiveFormats := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}
	for _, format := range naiveFormats {
		if t, err := time.ParseInLocation(format, timeStr, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &time.ParseError{
		Value:   timeStr,
		Message: "unable to parse time string",
	}
}

func ConvertToTimezone(t time.Time, airportCode string) time.Time {
	return t.In(GetLocationByAirport(airportCode))
}
