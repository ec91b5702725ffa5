// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-social-graph/internal/adapter"
	"github.com/MKhiriev/go-social-graph/internal/tui"
	"github.com/MKhiriev/go-social-graph/models"
	"github.com/urfave/cli/v2"
)

func (a *App) commands() []*cli.Command {
	pageFlags := []cli.Flag{
		&cli.IntFlag{Name: "first", Usage: "page size"},
		&cli.StringFlag{Name: "after", Usage: "cursor from the previous page"},
	}

	return []*cli.Command{
		{
			Name:  "signup",
			Usage: "create an account and log in",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "name", Required: true},
				&cli.StringFlag{Name: "password", Usage: "prompted when omitted"},
			},
			Action: a.signup,
		},
		{
			Name:  "login",
			Usage: "log in with email and password",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", Usage: "prompted when omitted"},
				&cli.BoolFlag{Name: "remember", Usage: "keep a remember token to restore the session later"},
			},
			Action: a.login,
		},
		{
			Name:   "restore",
			Usage:  "get a new access token from the remembered session",
			Action: a.restore,
		},
		{
			Name:   "logout",
			Usage:  "forget the session here and on the server",
			Action: a.logout,
		},
		{
			Name:   "whoami",
			Usage:  "show the logged in user",
			Action: a.whoami,
		},
		{
			Name:      "show",
			Usage:     "show a user",
			ArgsUsage: "ID",
			Action:    a.show,
		},
		{
			Name:      "follow",
			Usage:     "follow a user",
			ArgsUsage: "ID",
			Action:    a.follow,
		},
		{
			Name:      "unfollow",
			Usage:     "stop following a user",
			ArgsUsage: "ID",
			Action:    a.unfollow,
		},
		{
			Name:      "is-following",
			Usage:     "check whether one user follows another",
			ArgsUsage: "FOLLOWER_ID TARGET_ID",
			Action:    a.isFollowing,
		},
		{
			Name:      "followers",
			Usage:     "list the users following ID (default: you)",
			ArgsUsage: "[ID]",
			Flags:     pageFlags,
			Action:    a.followers,
		},
		{
			Name:      "followings",
			Usage:     "list the users ID follows (default: you)",
			ArgsUsage: "[ID]",
			Flags:     pageFlags,
			Action:    a.followings,
		},
	}
}

func (a *App) signup(c *cli.Context) error {
	s, err := a.open(c)
	if err != nil {
		return err
	}

	req := models.SignupRequest{
		Email:    c.String("email"),
		Name:     c.String("name"),
		Password: c.String("password"),
	}
	if req.Password == "" {
		if req.Password, err = a.prompt(c.Context, "Password", true); err != nil {
			return err
		}
		if req.PasswordConfirmation, err = a.prompt(c.Context, "Confirm password", true); err != nil {
			return err
		}
	}

	user, err := s.server.Signup(c.Context, req)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if err = s.save(); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Signed up as %s.\n%s\n", user.Name, tui.RenderUser(user))
	return nil
}

func (a *App) login(c *cli.Context) error {
	s, err := a.open(c)
	if err != nil {
		return err
	}

	req := models.LoginRequest{
		Email:      c.String("email"),
		Password:   c.String("password"),
		RememberMe: c.Bool("remember"),
	}
	if req.Password == "" {
		if req.Password, err = a.prompt(c.Context, "Password", true); err != nil {
			return err
		}
	}

	user, err := s.server.Login(c.Context, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err = s.save(); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Logged in as %s.\n", user.Name)
	if s.server.Credentials().RememberToken != "" {
		fmt.Fprintln(c.App.Writer, "Session remembered; use restore when the access token expires.")
	}
	return nil
}

func (a *App) restore(c *cli.Context) error {
	s, err := a.open(c)
	if err != nil {
		return err
	}

	user, err := s.server.Restore(c.Context)
	if errors.Is(err, adapter.ErrUnauthorized) {
		creds := s.server.Credentials()
		creds.RememberToken = ""
		s.server.SetCredentials(creds)
		if saveErr := s.save(); saveErr != nil {
			s.logger.Warn().Err(saveErr).Msg("failed to drop the stale remember token")
		}
	}
	if err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	if err = s.save(); err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Welcome back, %s.\n", user.Name)
	return nil
}

func (a *App) logout(c *cli.Context) error {
	s, err := a.open(c)
	if err != nil {
		return err
	}

	err = s.server.Logout(c.Context)
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		s.logger.Warn().Err(err).Msg("server rejected the access token, dropping the local session")
		s.server.SetCredentials(adapter.Credentials{})
	case err != nil:
		return fmt.Errorf("logout: %w", err)
	}

	if err = s.save(); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Logged out.")
	return nil
}

func (a *App) whoami(c *cli.Context) error {
	s, err := a.open(c)
	if err != nil {
		return err
	}

	userID := s.server.Credentials().UserID
	if userID == 0 {
		return adapter.ErrNotLoggedIn
	}

	return a.printUser(c, s, userID)
}

func (a *App) show(c *cli.Context) error {
	userID, err := userIDArg(c, 0)
	if err != nil {
		return err
	}

	s, err := a.open(c)
	if err != nil {
		return err
	}

	return a.printUser(c, s, userID)
}

func (a *App) printUser(c *cli.Context, s *session, userID int64) error {
	user, err := s.server.GetUser(c.Context, userID)
	if err != nil {
		return fmt.Errorf("get user %d: %w", userID, err)
	}

	fmt.Fprintln(c.App.Writer, tui.RenderUser(user))
	return nil
}

func (a *App) follow(c *cli.Context) error {
	userID, err := userIDArg(c, 0)
	if err != nil {
		return err
	}

	s, err := a.open(c)
	if err != nil {
		return err
	}

	if _, err = s.server.Follow(c.Context, userID); err != nil {
		return fmt.Errorf("follow %d: %w", userID, err)
	}

	fmt.Fprintf(c.App.Writer, "You follow #%d.\n", userID)
	return nil
}

func (a *App) unfollow(c *cli.Context) error {
	userID, err := userIDArg(c, 0)
	if err != nil {
		return err
	}

	s, err := a.open(c)
	if err != nil {
		return err
	}

	if _, err = s.server.Unfollow(c.Context, userID); err != nil {
		return fmt.Errorf("unfollow %d: %w", userID, err)
	}

	fmt.Fprintf(c.App.Writer, "You no longer follow #%d.\n", userID)
	return nil
}

func (a *App) isFollowing(c *cli.Context) error {
	followerID, err := userIDArg(c, 0)
	if err != nil {
		return err
	}
	targetID, err := userIDArg(c, 1)
	if err != nil {
		return err
	}

	s, err := a.open(c)
	if err != nil {
		return err
	}

	following, err := s.server.IsFollowing(c.Context, followerID, targetID)
	if err != nil {
		return fmt.Errorf("is following: %w", err)
	}

	if following {
		fmt.Fprintf(c.App.Writer, "#%d follows #%d.\n", followerID, targetID)
	} else {
		fmt.Fprintf(c.App.Writer, "#%d does not follow #%d.\n", followerID, targetID)
	}
	return nil
}

func (a *App) followers(c *cli.Context) error {
	return a.listEdges(c, "followers", adapter.ServerAdapter.Followers)
}

func (a *App) followings(c *cli.Context) error {
	return a.listEdges(c, "followings", adapter.ServerAdapter.Followings)
}

type listFunc func(adapter.ServerAdapter, context.Context, int64, models.PageRequest) (models.UserPage, error)

func (a *App) listEdges(c *cli.Context, title string, list listFunc) error {
	s, err := a.open(c)
	if err != nil {
		return err
	}

	userID := s.server.Credentials().UserID
	if c.Args().Present() {
		if userID, err = userIDArg(c, 0); err != nil {
			return err
		}
	}
	if userID == 0 {
		return adapter.ErrNotLoggedIn
	}

	page, err := list(s.server, c.Context, userID, models.PageRequest{
		First: c.Int("first"),
		After: c.String("after"),
	})
	if err != nil {
		return fmt.Errorf("%s of %d: %w", title, userID, err)
	}

	fmt.Fprintln(c.App.Writer, tui.RenderUserPage(title, page))
	return nil
}

func userIDArg(c *cli.Context, i int) (int64, error) {
	raw := c.Args().Get(i)
	if raw == "" {
		return 0, errMissingUserID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidUserID, raw)
	}
	return id, nil
}
