package domain

type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

type EventType string

const (
	EventCoursePurchased EventType = "course.purchased"
	EventOTPRequested    EventType = "mail.otp"
)

// minorUnitsExp course prices are whole currency units, the provider expects minor units.
const minorUnitsExp = 2
