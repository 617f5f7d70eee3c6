package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Draft is a song sketched offline, waiting for a sync. Drafts never touch
// the simulation until they are pushed through POST /v1/songs.
type Draft struct {
	Title  string `json:"title"`
	Theme  string `json:"theme"`
	Genre  string `json:"genre"`
	Style  string `json:"style"`
	Lyrics string `json:"lyrics,omitempty"`
	Beat   string `json:"beat,omitempty"`
}

func draftsPath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "drafts.json"), nil
}

func LoadDrafts() ([]Draft, error) {
	path, err := draftsPath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Draft{}, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return []Draft{}, nil
	}
	var out []Draft
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func SaveDrafts(drafts []Draft) error {
	path, err := draftsPath()
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(drafts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func PushDraft(d Draft) error {
	drafts, err := LoadDrafts()
	if err != nil {
		return err
	}
	drafts = append(drafts, d)
	return SaveDrafts(drafts)
}
