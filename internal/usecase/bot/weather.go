package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/weather"
	"github.com/tuananhdev/slack-assistant/pkg/format"

	"github.com/tuananhdev/slack-assistant/internal/domain/entities"
)

const weatherApologyReply = "Sorry, I couldn't find that location. Please try again."

const forecastDays = 5

// displayWeather fetches a five-day forecast for the queried location and
// posts a summary to the originating channel. An unresolvable location
// yields a fixed apology instead.
func (s *service) displayWeather(ctx context.Context, params *structpb.Struct, msg MessageContext) error {
	query := stringField(params, "query")
	if query == "" {
		return entities.ErrMissingQuery
	}

	fr, err := s.weather.Forecast(ctx, query, forecastDays)
	if err != nil {
		s.logger.Warn("weather lookup failed",
			zap.String("query", query),
			zap.Error(err),
		)
		return s.slack.PostMessage(ctx, msg.ChannelID, weatherApologyReply)
	}

	return s.slack.PostMessage(ctx, msg.ChannelID, forecastMessage(fr))
}

func forecastMessage(fr *weather.ForecastResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Here's the weather in %s, %s.*\n\n", fr.Location.Name, fr.Location.Region)
	b.WriteString("Current Weather:\n")
	fmt.Fprintf(&b, "\t%s°F (%s)\n", format.Number(fr.Current.TempF), fr.Current.Condition.Text)

	if len(fr.Forecast.ForecastDay) > 0 {
		astro := fr.Forecast.ForecastDay[0].Astro
		fmt.Fprintf(&b, "\tSunrise: %s\n", astro.Sunrise)
		fmt.Fprintf(&b, "\tSunset: %s\n", astro.Sunset)
	}

	b.WriteString("\nFive Day Forecast:\n")
	for _, fd := range fr.Forecast.ForecastDay {
		b.WriteString(forecastLine(fd))
	}

	return b.String()
}

// forecastLine renders one day of the forecast. Month numbers are
// zero-based (January = 0), matching the message format this bot has always
// produced; weekday names come straight from time.Weekday.
func forecastLine(fd weather.ForecastDay) string {
	t := time.Unix(fd.DateEpoch, 0).UTC()
	return fmt.Sprintf("\t%s %d/%d - %s°F/%s°F (%s)\n",
		t.Weekday().String(),
		int(t.Month())-1,
		t.Day(),
		format.Number(fd.Day.MaxTempF),
		format.Number(fd.Day.MinTempF),
		fd.Day.Condition.Text,
	)
}
