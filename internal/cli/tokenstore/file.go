package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const sessionFileName = "shopd-session.json"

// SessionFile is the ephemeral backend: a JSON file under the OS temp
// directory. It approximates the web client's session-scoped storage: gone
// after logout or a reboot, but shared by commands run during one session.
type SessionFile struct {
	path string
}

// NewSessionFile creates a session-file backend. An empty path uses the
// default location under os.TempDir.
func NewSessionFile(path string) *SessionFile {
	if path == "" {
		path = filepath.Join(os.TempDir(), sessionFileName)
	}
	return &SessionFile{path: path}
}

func (f *SessionFile) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt session file is treated as empty; the next save
		// rewrites it.
		return map[string]string{}, nil
	}
	return values, nil
}

func (f *SessionFile) save(values map[string]string) error {
	if len(values) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal session file: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

func (f *SessionFile) Get(key string) (string, error) {
	values, err := f.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

func (f *SessionFile) Set(key, value string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *SessionFile) Delete(key string) error {
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}
