package model

// Category is the machine name of an event category
type Category string

const (
	CategoryOnlineWorkshop Category = "online_workshop"
	CategoryHackathon      Category = "hackathon"
	CategoryConference     Category = "conference"
	CategoryOneDayWorkshop Category = "one_day_workshop"
)

// Categories is the closed category table in display order.
var Categories = []Category{
	CategoryOnlineWorkshop,
	CategoryHackathon,
	CategoryConference,
	CategoryOneDayWorkshop,
}

var categoryLabels = map[Category]string{
	CategoryOnlineWorkshop: "Online Workshop",
	CategoryHackathon:      "Hackathon",
	CategoryConference:     "Conference",
	CategoryOneDayWorkshop: "One-day Workshop",
}

// IsValid reports whether c belongs to the category table
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label, or the raw machine name for unknown values
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
