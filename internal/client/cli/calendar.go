package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mealplanner/internal/client/models"
)

const defaultLinkRedirect = "about:blank"

func (a *App) LinkCalendar(context.Context) error {
	redirect, err := GetSimpleText(a.reader, "-Page to return to after linking (empty for none)", a.out)
	if err != nil {
		return err
	}
	if redirect == "" {
		redirect = defaultLinkRedirect
	}

	u, err := a.api.AuthorizeURL(redirect)
	if err != nil {
		return err
	}
	a.println("Open this address in a browser to link your calendar:")
	a.println(u)
	return nil
}

func (a *App) LinkStatus(ctx context.Context) error {
	linked, err := a.api.LinkStatus(ctx)
	if err != nil {
		return err
	}
	if linked {
		a.println("Calendar is linked")
	} else {
		a.println("Calendar is not linked")
	}
	return nil
}

func (a *App) UnlinkCalendar(ctx context.Context) error {
	if err := a.api.Unlink(ctx); err != nil {
		return err
	}
	a.println("Calendar unlinked")
	return nil
}

// parseScheduleLine reads "<date> <meal type> <recipe name...>".
func parseScheduleLine(line string) (models.ScheduledRecipe, error) {
	f := strings.Fields(line)
	if len(f) < 3 {
		return models.ScheduledRecipe{}, fmt.Errorf("expected \"<date> <meal type> <recipe>\", got %q", line)
	}
	return models.ScheduledRecipe{
		Date:       f[0],
		MealType:   f[1],
		RecipeName: strings.Join(f[2:], " "),
	}, nil
}

func (a *App) readWeek(label string) ([]models.ScheduledRecipe, error) {
	a.printf("-%s: one per line as \"2025-01-06 Dinner Pasta\" (empty line to finish)\n", label)
	lines, err := GetLines(a.reader)
	if err != nil {
		return nil, err
	}
	out := make([]models.ScheduledRecipe, 0, len(lines))
	for _, l := range lines {
		item, err := parseScheduleLine(l)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (a *App) Schedule(ctx context.Context) error {
	tz, err := GetSimpleText(a.reader, "-Time zone, e.g. Europe/Riga (empty for server default)", a.out)
	if err != nil {
		return err
	}
	thisWeek, err := a.readWeek("This week")
	if err != nil {
		return err
	}
	nextWeek, err := a.readWeek("Next week")
	if err != nil {
		return err
	}
	if len(thisWeek)+len(nextWeek) == 0 {
		a.println("Nothing to schedule")
		return nil
	}

	err = a.api.Schedule(ctx, models.ScheduleRequest{
		ThisWeekRecipes: thisWeek,
		NextWeekRecipes: nextWeek,
		TimeZone:        tz,
	})
	if err != nil {
		return err
	}
	a.printf("Scheduled %d meals\n", len(thisWeek)+len(nextWeek))
	return nil
}
