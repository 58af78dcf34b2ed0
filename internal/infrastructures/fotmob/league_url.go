package fotmob

import (
	"fmt"
	"strings"

	derr "github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/errors"
	"github.com/mohameedmagdii/Fotmob-Leagues-Extraction/internal/domain/models"
)

// leagueSegment is the index of the league id after splitting on "/",
// counting the "https:" and empty segments around "//".
const leagueSegment = 4

// LeagueIDFromURL extracts the league id from a league page URL such as
// https://www.fotmob.com/leagues/47/overview/premier-league. The check is
// purely syntactic.
func LeagueIDFromURL(rawURL string) (models.LeagueID, error) {
	parts := strings.Split(rawURL, "/")
	if len(parts) <= leagueSegment {
		return "", fmt.Errorf("%w: %q", derr.ErrInvalidInput, rawURL)
	}

	return models.LeagueID(parts[leagueSegment]), nil
}
