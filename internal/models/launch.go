package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Outcome is the tri-state result of a launch or a booster landing
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

// String returns the label used in tables and reports
func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "Successful"
	case OutcomeFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// UnmarshalJSON maps true/false/null onto the three outcomes
func (o *Outcome) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = OutcomeUnknown
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("outcome must be true, false or null: %w", err)
	}
	if b {
		*o = OutcomeSucceeded
	} else {
		*o = OutcomeFailed
	}
	return nil
}

// MarshalJSON writes the outcome back in the API's nullable-bool form
func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o {
	case OutcomeSucceeded:
		return []byte("true"), nil
	case OutcomeFailed:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// Ref is a reference to another API resource.
// The list endpoint sends a bare ID string; populated queries send an object.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts either "id" or {"id": ..., "name": ...}
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid reference: %w", err)
	}
	*r = Ref(p)
	return nil
}

// Label returns the name when known, otherwise "Unknown"
func (r Ref) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return "Unknown"
}

// Payload is a payload carried by a launch
type Payload struct {
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	Type   string   `json:"type,omitempty"`
	MassKg *float64 `json:"mass_kg,omitempty"`
}

// UnmarshalJSON accepts a bare payload ID or a populated payload object
func (p *Payload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*p = Payload{ID: id}
		return nil
	}
	type plain Payload
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	*p = Payload(v)
	return nil
}

// Core is one booster core flown on a launch
type Core struct {
	CoreID         string  `json:"core"`
	Flight         *int    `json:"flight"`
	LandingAttempt *bool   `json:"landing_attempt"`
	Landing        Outcome `json:"landing_success"`
	LandingType    string  `json:"landing_type"`
}

// LandingLabel describes the landing outcome the way the detail view shows it
func (c Core) LandingLabel() string {
	switch c.Landing {
	case OutcomeSucceeded:
		return "Landed"
	case OutcomeFailed:
		return "Lost"
	default:
		return "No Landing"
	}
}

// Patch holds the mission patch image URLs
type Patch struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// Flickr holds mission photo URLs
type Flickr struct {
	Small    []string `json:"small"`
	Original []string `json:"original"`
}

// Links holds the media and reference links of a launch
type Links struct {
	Patch     Patch  `json:"patch"`
	Webcast   string `json:"webcast"`
	Wikipedia string `json:"wikipedia"`
	Article   string `json:"article"`
	Flickr    Flickr `json:"flickr"`
}

// URLs returns every non-empty reference URL: webcast, wikipedia, article, then photos
func (l Links) URLs() []string {
	var urls []string
	for _, u := range []string{l.Webcast, l.Wikipedia, l.Article} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	for _, u := range l.Flickr.Original {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Launch is one launch record from the SpaceX v4 API
type Launch struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	FlightNumber int       `json:"flight_number"`
	DateUTC      time.Time `json:"date_utc"`
	Upcoming     bool      `json:"upcoming"`
	Outcome      Outcome   `json:"success"`
	Rocket       Ref       `json:"rocket"`
	Launchpad    Ref       `json:"launchpad"`
	Details      *string   `json:"details"`
	Links        Links     `json:"links"`
	Payloads     []Payload `json:"payloads"`
	Cores        []Core    `json:"cores"`
}

// Year returns the UTC calendar year of the launch as a 4-digit string
func (l Launch) Year() string {
	return strconv.Itoa(l.DateUTC.UTC().Year())
}

// Description returns the free-text details or an empty string
func (l Launch) Description() string {
	if l.Details == nil {
		return ""
	}
	return *l.Details
}

// Rocket is a launch vehicle from the rockets endpoint
type Rocket struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Active         bool   `json:"active"`
	SuccessRatePct int    `json:"success_rate_pct"`
}
