package models

import (
	"time"
)

// RideType classifies a booking tier.
type RideType string

const (
	TypeEconomy RideType = "economy"
	TypeComfort RideType = "comfort"
	TypePremium RideType = "premium"
	TypeXL      RideType = "xl"
)

// RideTypes lists all tiers in their fixed enumeration order. Deterministic
// tie-breaks in analytics rely on this order.
var RideTypes = []RideType{TypeEconomy, TypeComfort, TypePremium, TypeXL}

// Valid reports whether t is one of the known tiers.
func (t RideType) Valid() bool {
	for _, known := range RideTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RideStatus is the booking lifecycle state.
type RideStatus string

const (
	StatusUpcoming  RideStatus = "upcoming"
	StatusCompleted RideStatus = "completed"
	StatusCancelled RideStatus = "cancelled"
)

// Terminal reports whether no further transition is defined from s.
func (s RideStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Driver is descriptive metadata synthesized at booking time.
type Driver struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// Vehicle is descriptive metadata synthesized at booking time.
type Vehicle struct {
	Model string `json:"model"`
	Plate string `json:"plate"`
}

// Ride is a single booking record.
//
// DateTime is the user-supplied scheduled time; CreatedAt is the record
// creation timestamp. Analytics windows run on CreatedAt, monthly spending
// buckets on DateTime. Both are stored as strings: scheduled times arrive
// without zone or seconds and round-tripping them through time.Time would
// rewrite what the user typed.
type Ride struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Pickup     string     `json:"pickup"`
	Dropoff    string     `json:"dropoff"`
	DateTime   string     `json:"dateTime"`
	Passengers int        `json:"passengers"`
	Type       RideType   `json:"type"`
	Status     RideStatus `json:"status"`
	Price      int        `json:"price"`
	Driver     Driver     `json:"driver"`
	CreatedAt  string     `json:"createdAt"`
	Vehicle    Vehicle    `json:"vehicle"`
}

// whenLayouts are the timestamp shapes that appear in stored records:
// full RFC 3339 (createdAt) and the zone-less minute precision the
// datetime-local input produces (dateTime).
var whenLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseWhen parses a stored timestamp string in any of the accepted layouts.
func ParseWhen(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range whenLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ScheduledAt returns the parsed scheduled time, or the zero time when the
// stored value does not parse.
func (r Ride) ScheduledAt() time.Time {
	t, err := ParseWhen(r.DateTime)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreatedTime returns the parsed record-creation time, or the zero time
// when the stored value does not parse.
func (r Ride) CreatedTime() time.Time {
	t, err := ParseWhen(r.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
