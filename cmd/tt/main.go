// Package main implements the tt CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tasktrack/tasktrack/internal/config"
	"github.com/tasktrack/tasktrack/notify"
	"github.com/tasktrack/tasktrack/tracker"
	"github.com/tasktrack/tasktrack/userdir"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tt",
	Short: "TaskTracker - work session and attendance tracking",
}

// EnvUser names the acting user when --user is not given.
const EnvUser = "TASKTRACK_USER"

var rootUser string

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootUser, "user", "u", "", "Acting user id (defaults to $TASKTRACK_USER)")
}

// currentUserID resolves the acting user: the --user flag, then the
// environment, then the legacy sentinel.
func currentUserID() string {
	if rootUser != "" {
		return rootUser
	}
	if user := os.Getenv(EnvUser); user != "" {
		return user
	}
	return tracker.LegacyUserID
}

func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(cwd)
}

func dataDir() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.DataDir()
}

func openTracker() (*tracker.Store, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return tracker.Open(dir), nil
}

func openDirectory() (*userdir.Directory, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return userdir.Open(dir), nil
}

func openNotifyLog() (*notify.Log, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return notify.Open(dir), nil
}

// currentUser looks the acting user up in the directory; ids with no
// directory entry get a bare non-admin identity so operations still work.
func currentUser() (userdir.User, error) {
	directory, err := openDirectory()
	if err != nil {
		return userdir.User{}, err
	}
	id := currentUserID()
	user, err := directory.Get(id)
	if err != nil {
		return userdir.User{ID: id, Name: id, Role: userdir.RoleUser}, nil
	}
	return user, nil
}
