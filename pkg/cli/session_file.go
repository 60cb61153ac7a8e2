package cli

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/model"
	"gopkg.in/yaml.v3"
)

const sessionFileName = ".emolens.yml"

func (cfg *config) sessionFile() (string, error) {
	if cfg.sessionPath != "" {
		return cfg.sessionPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve home directory")
	}
	return filepath.Join(home, sessionFileName), nil
}

// saveSession persists the signed-in user for later commands
func (cfg *config) saveSession(user *model.User) error {
	path, err := cfg.sessionFile()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(user)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal session")
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write session file", goerr.V("path", path))
	}
	return nil
}

// currentUser loads the signed-in user from the session file
func (cfg *config) currentUser() (*model.User, error) {
	path, err := cfg.sessionFile()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.New("not signed in, run 'emolens auth login' first")
		}
		return nil, goerr.Wrap(err, "failed to read session file", goerr.V("path", path))
	}

	var user model.User
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, goerr.Wrap(err, "failed to parse session file", goerr.V("path", path))
	}
	if user.ID == "" {
		return nil, goerr.New("session file has no user, run 'emolens auth login' again")
	}

	return &user, nil
}

// clearSession removes the session file. Missing file is not an error.
func (cfg *config) clearSession() error {
	path, err := cfg.sessionFile()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to remove session file", goerr.V("path", path))
	}
	return nil
}
