package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/eventhub/internal/client/session"
)

// Register prompts for account details and creates the account on the server.
// It does not log in; the user runs login afterwards.
func (a *App) Register(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Enter your name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	user, err := a.client.Register(ctx, name, email, string(password))
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Account created for %s. Run 'login' to sign in.\n", user.Email)
	return nil
}

// Login authenticates against the server and persists the session so the
// token survives restarts.
func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	token, user, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.client.SetToken(token)
	a.user = &user

	if err := a.sessions.Save(&session.Session{Token: token, User: user}); err != nil {
		fmt.Println("warning: could not save session:", err.Error())
	}

	fmt.Printf("Logged in as %s\n", user.Email)
	return nil
}

// Logout drops the in-memory token and removes the session file.
func (a *App) Logout(ctx context.Context) error {
	a.client.SetToken("")
	a.user = nil

	if err := a.sessions.Clear(); err != nil {
		fmt.Println(err.Error())
		return err
	}

	fmt.Println("Logged out.")
	return nil
}
