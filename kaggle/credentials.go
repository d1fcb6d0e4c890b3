package kaggle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoCredentials is returned when neither the environment nor kaggle.json provide an API key.
var ErrNoCredentials = errors.New("kaggle credentials not found: set KAGGLE_USERNAME/KAGGLE_KEY or create ~/.kaggle/kaggle.json " +
	"(see https://github.com/Kaggle/kaggle-api#api-credentials)")

// Credentials is the content of kaggle.json.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// LoadCredentials prefers explicit values and falls back to the kaggle.json file.
func LoadCredentials(username, key string) (Credentials, error) {
	if username != "" && key != "" {
		return Credentials{Username: username, Key: key}, nil
	}
	path, err := credentialsPath()
	if err != nil {
		return Credentials{}, err
	}
	return ReadCredentials(path)
}

// ReadCredentials reads a kaggle.json file.
func ReadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, ErrNoCredentials
		}
		return Credentials{}, fmt.Errorf("kaggle: read %q: %w", path, err)
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("kaggle: parse %q: %w", path, err)
	}
	if c.Username == "" || c.Key == "" {
		return Credentials{}, ErrNoCredentials
	}
	return c, nil
}

func credentialsPath() (string, error) {
	if dir := os.Getenv("KAGGLE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "kaggle.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("kaggle: home dir: %w", err)
	}
	return filepath.Join(home, ".kaggle", "kaggle.json"), nil
}
