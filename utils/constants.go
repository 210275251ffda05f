// File: utils/constants.go
package utils

import "time"

// AvailabilityCachePrefix is the prefix used for cached availability responses.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL is the time-to-live for availability cache entries.
const AvailabilityCacheTTL = 5 * time.Minute

// DeviceTokenPrefix is the prefix used for mentee FCM token keys.
const DeviceTokenPrefix = "fcm:"

// ReminderLeadTime is how long before a session its reminder fires.
const ReminderLeadTime = time.Hour

const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)
