package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"atc-cli/booking"
)

// Identity is the persisted session: the last VID the user set,
// restored on startup and cleared when they clear their identifier.
type Identity struct {
	VID     string `json:"vid"`
	SavedAt string `json:"saved_at"`
}

// LoadIdentity returns nil without error when no identity is stored.
func LoadIdentity() (*Identity, error) {
	path, err := IdentityPath()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("identity path is a directory: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ident Identity
	if err := json.NewDecoder(file).Decode(&ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

// SaveIdentity validates and stores the VID.
func SaveIdentity(vid string) error {
	if err := booking.VIDError(vid); err != nil {
		return err
	}
	if _, err := ensureConfigDir(); err != nil {
		return err
	}
	path, err := IdentityPath()
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer file.Close()

	ident := Identity{
		VID:     booking.NormalizeVID(vid),
		SavedAt: time.Now().UTC().Format(time.RFC3339),
	}
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ident)
}

func ClearIdentity() error {
	path, err := IdentityPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}
