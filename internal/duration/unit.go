package duration

import (
	"fmt"
	"strings"
	"time"

	"github.com/gyeh/ptclass/internal/model"
)

// Unit is the resolution a derived duration is expressed in.
type Unit int

const (
	Seconds Unit = iota
	Minutes
	Hours
	Days
)

// AllUnits lists the supported units.
var AllUnits = []Unit{Seconds, Minutes, Hours, Days}

// ParseUnit accepts the unit names used on the command line and in config.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "seconds", "second", "s":
		return Seconds, nil
	case "minutes", "minute", "m":
		return Minutes, nil
	case "hours", "hour", "h":
		return Hours, nil
	case "days", "day", "d":
		return Days, nil
	}
	return 0, fmt.Errorf("unknown duration unit %q (want seconds, minutes, hours or days)", s)
}

func (u Unit) String() string {
	switch u {
	case Seconds:
		return "seconds"
	case Minutes:
		return "minutes"
	case Hours:
		return "hours"
	case Days:
		return "days"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Column is the name of the column a derivation in this unit produces.
func (u Unit) Column() string {
	switch u {
	case Seconds:
		return model.ColDurationS
	case Minutes:
		return model.ColDurationM
	case Days:
		return model.ColDurationD
	}
	return model.ColDurationH
}

// Convert returns the number of whole units in d, truncated toward zero.
func (u Unit) Convert(d time.Duration) int64 {
	switch u {
	case Seconds:
		return int64(d / time.Second)
	case Minutes:
		return int64(d / time.Minute)
	case Days:
		return int64(d / (24 * time.Hour))
	}
	return int64(d / time.Hour)
}
