package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/essabriabdelghani/chatbot-gemini/internal/common"
)

func (a *App) Register(ctx context.Context) {

	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	res, err := a.apiClient.Register(ctx, name, email, password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorEmailExists):
			fmt.Println("This email is already registered.")
		case errors.Is(err, common.ErrorValidation):
			fmt.Println("All fields are required.")
		default:
			fmt.Printf("Registration failed: %v\n", err)
		}
		return
	}

	if err := a.session.Set(ctx, &res.User, res.Token); err != nil {
		fmt.Printf("error saving session: %v\n", err)
		return
	}

	fmt.Printf("Welcome, %s!\n", res.User.Name)
}

func (a *App) Login(ctx context.Context) {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	res, err := a.apiClient.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			fmt.Println("Invalid email or password.")
		} else {
			fmt.Printf("Login failed: %v\n", err)
		}
		return
	}

	if err := a.session.Set(ctx, &res.User, res.Token); err != nil {
		fmt.Printf("error saving session: %v\n", err)
		return
	}

	fmt.Printf("Welcome back, %s!\n", res.User.Name)
}

func (a *App) Logout(ctx context.Context) {
	a.session.Clear(ctx)
	fmt.Println("Logged out.")
}

func (a *App) Profile(ctx context.Context) {

	_, token, ok := a.session.Current()
	if !ok {
		fmt.Println("Not logged in.")
		return
	}

	user, err := a.apiClient.Profile(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// Session died server-side (expired or revoked token).
			a.session.Clear(ctx)
			fmt.Println("Session expired, please log in again.")
		} else {
			fmt.Printf("error: %v\n", err)
		}
		return
	}

	fmt.Printf("%s %s <%s> since %s\n", user.Avatar, user.Name, user.Email, user.CreatedAt.Format("2006-01-02"))
}
