package cli

import (
	"context"

	"github.com/dmitrijs2005/mealplanner/internal/common"
)

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := GetSimpleText(a.reader, "-Enter user name", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, userName, string(password))
	if err != nil {
		return err
	}
	a.printf("Registered %s. Default meal times: breakfast %s, lunch %s, dinner %s\n",
		u.UserName, u.MealTimes.Breakfast, u.MealTimes.Lunch, u.MealTimes.Dinner)

	if err := a.api.Login(ctx, userName, string(password)); err != nil {
		return err
	}
	a.userName = userName
	a.println("Login successful")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, string(password)); err != nil {
		return err
	}
	a.userName = userName
	a.println("Login successful")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.api.Logout()
	a.userName = ""
	a.println("Logged out")
	return nil
}
