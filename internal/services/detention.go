package services

import (
	"math"
	"time"

	"portops-backend/internal/models"
	"portops-backend/internal/timeutil"
)

// DetentionLevel is the urgency tier of a container's DET deadline.
type DetentionLevel string

const (
	DetentionUrgent  DetentionLevel = "urgent"
	DetentionWarning DetentionLevel = "warning"
	DetentionSafe    DetentionLevel = "safe"
)

// DetentionConfig holds the day thresholds for urgency classification.
type DetentionConfig struct {
	UrgentDays  int `json:"urgentDays"`
	WarningDays int `json:"warningDays"`
}

func DefaultDetentionConfig() DetentionConfig {
	return DetentionConfig{UrgentDays: 2, WarningDays: 5}
}

// ClassifyDetention returns the urgency tier for a DET expiry date.
// diffDays is the ceiling of the remaining time in days; an expiry within
// urgentDays is urgent, within warningDays is warning, otherwise safe.
// The urgent branch is checked first, so an inverted config still
// classifies deterministically. An empty or unparseable expiry is safe —
// unknown is not urgent.
func ClassifyDetention(expiry string, cfg DetentionConfig, now time.Time) DetentionLevel {
	t, err := time.Parse(timeutil.DateLayout, expiry)
	if err != nil {
		return DetentionSafe
	}
	diffDays := int(math.Ceil(t.Sub(now).Hours() / 24))
	if diffDays <= cfg.UrgentDays {
		return DetentionUrgent
	}
	if diffDays <= cfg.WarningDays {
		return DetentionWarning
	}
	return DetentionSafe
}

// IsExploitable reports whether a container's customs documentation is
// complete enough to release it for tally operations: both the carrier
// declaration (tkNhaVC) and the DNL/OLA declaration must be present.
func IsExploitable(c *models.Container) bool {
	return c.TkNhaVC != "" && c.TkDnlOla != ""
}
