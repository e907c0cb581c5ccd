package cli

import "context"

func (a *App) ShowMealTimes(ctx context.Context) error {
	mt, err := a.api.MealTimes(ctx)
	if err != nil {
		return err
	}
	a.printf("Breakfast %s\nLunch     %s\nDinner    %s\n", mt.Breakfast, mt.Lunch, mt.Dinner)
	return nil
}

// SetMealTimes prompts for each meal; an empty answer keeps the current time.
func (a *App) SetMealTimes(ctx context.Context) error {
	mt, err := a.api.MealTimes(ctx)
	if err != nil {
		return err
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"Breakfast", &mt.Breakfast},
		{"Lunch", &mt.Lunch},
		{"Dinner", &mt.Dinner},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, "-"+f.name+" time HH:MM (current "+*f.dst+")", a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}

	if err := a.api.SetMealTimes(ctx, *mt); err != nil {
		return err
	}
	a.println("Meal times updated")
	return nil
}
