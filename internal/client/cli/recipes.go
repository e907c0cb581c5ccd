package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mealplanner/internal/client/models"
	"github.com/dmitrijs2005/mealplanner/internal/filex"
	"github.com/dmitrijs2005/mealplanner/internal/netx"
)

const maxImageBytes = 10 << 20

func (a *App) AddRecipe(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "-Recipe name", a.out)
	if err != nil {
		return err
	}
	cook, err := GetSimpleText(a.reader, "-Cook time (minutes)", a.out)
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(cook)
	if err != nil {
		return errors.New("cook time must be a whole number of minutes")
	}
	description, err := GetMultiline(a.reader, "-Description", a.out)
	if err != nil {
		return err
	}

	a.printf("-Ingredients, one per line: name, amount, unit[, calories, fat, protein, carbohydrates, cost]\n" +
		"(press Enter on an empty line to finish)\n")
	lines, err := GetLines(a.reader)
	if err != nil {
		return err
	}
	ingredients := make([]models.Ingredient, 0, len(lines))
	for i, line := range lines {
		ing, err := parseIngredientLine(line)
		if err != nil {
			return fmt.Errorf("ingredient %d: %w", i+1, err)
		}
		ingredients = append(ingredients, ing)
	}

	r, err := a.api.CreateRecipe(ctx, name, description, minutes, ingredients)
	if err != nil {
		return err
	}
	a.printf("Recipe saved, id=%s (%d kcal, cost %d)\n", r.ID, r.Calories, r.EstimatedCost)
	return nil
}

// parseIngredientLine reads "name, amount, unit" optionally followed by
// calories, fat, protein, carbohydrates and cost. Missing numbers are zero.
func parseIngredientLine(line string) (models.Ingredient, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < 3 || len(fields) > 8 {
		return models.Ingredient{}, errors.New("expected name, amount, unit and up to five numbers")
	}
	if fields[0] == "" {
		return models.Ingredient{}, errors.New("name is required")
	}

	amount, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("amount %q is not a number", fields[1])
	}

	var nums [5]int
	for i, f := range fields[3:] {
		if nums[i], err = strconv.Atoi(f); err != nil {
			return models.Ingredient{}, fmt.Errorf("%q is not a whole number", f)
		}
	}

	return models.Ingredient{
		Name:          fields[0],
		Amount:        amount,
		Unit:          fields[2],
		Calories:      nums[0],
		Fat:           nums[1],
		Protein:       nums[2],
		Carbohydrates: nums[3],
		EstimatedCost: nums[4],
	}, nil
}

// DeleteRecipe expects "<recipe id>".
func (a *App) DeleteRecipe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delrecipe <recipe id>")
	}
	if err := a.api.DeleteRecipe(ctx, args[0]); err != nil {
		return err
	}
	a.println("Recipe deleted")
	return nil
}

func (a *App) ListRecipes(ctx context.Context) error {
	list, err := a.api.ListRecipes(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No recipes yet")
		return nil
	}
	for _, r := range list {
		image := ""
		if r.ImageKey != "" {
			image = " [image]"
		}
		a.printf("%s  %-30s %4d min %5d kcal%s\n", r.ID, r.Name, r.CookTime, r.Calories, image)
	}
	return nil
}

// UploadImage expects "<recipe id> <file path>".
func (a *App) UploadImage(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: image <recipe id> <file>")
	}

	data, contentType, err := filex.ReadImage(args[1], maxImageBytes)
	if err != nil {
		return err
	}

	up, err := a.api.RecipeImageUpload(ctx, args[0])
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, a.upload, up.UploadURL, contentType, data); err != nil {
		return err
	}
	a.printf("Image uploaded (%d bytes)\n", len(data))
	return nil
}
