package mappers

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
)

const (
	kickoffLayout         = "2006-01-02T15:04:05Z"
	kickoffFractionLayout = "2006-01-02T15:04:05.999999Z"
	localLayout           = "2006-01-02 15:04:05"

	// LocalOffset is the fixed shift applied to upstream UTC kickoffs.
	// It is not derived from any timezone database.
	LocalOffset = 2 * time.Hour
)

// time.Parse alone also takes comma fractions and more than six digits.
var kickoffPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d{1,6})?Z$`)

// NormalizeKickoff turns an upstream UTC timestamp into the local display
// form. Sub-second precision is dropped.
func NormalizeKickoff(utc string) (string, error) {
	if !kickoffPattern.MatchString(utc) {
		return "", fmt.Errorf("%w: unsupported kickoff format %q", derr.ErrParse, utc)
	}

	layout := kickoffLayout
	if strings.Contains(utc, ".") {
		layout = kickoffFractionLayout
	}

	t, err := time.Parse(layout, utc)
	if err != nil {
		return "", fmt.Errorf("%w: unsupported kickoff format %q", derr.ErrParse, utc)
	}

	return t.Add(LocalOffset).Format(localLayout), nil
}
